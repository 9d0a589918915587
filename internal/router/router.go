package router

import (
	"Connect_Hub/internal/handler"
	"Connect_Hub/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	User      *handler.UserHandler
	Email     *handler.EmailHandler
	Post      *handler.PostHandler
	Community *handler.CommunityHandler
	Admin     *handler.AdminHandler
}

func InitRouter(h Handlers) *gin.Engine {
	r := gin.Default()

	// 邮件相关接口
	emailGroup := r.Group("/api/email")
	{
		emailGroup.POST("/:scope/code", h.Email.SendCode)
	}

	// 用户相关接口
	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/register", h.User.Register)
		userGroup.POST("/login", h.User.Login)
	}

	// token相关接口
	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", h.User.TokenRefresh)
	}

	// 登录态接口
	authGroup := r.Group("/api/auth")
	authGroup.Use(middleware.AuthMiddleware())
	{
		authGroup.POST("/logout", h.User.Logout)
		authGroup.POST("/change-password", h.User.ChangePassword)
	}

	// 帖子相关接口
	postGroup := r.Group("/api/post")
	postGroup.Use(middleware.AuthMiddleware())
	{
		postGroup.GET("/feed", h.Post.Feed)
		postGroup.POST("/create", h.Post.CreatePost)
		postGroup.POST("/:id/upvote", h.Post.Upvote)
		postGroup.POST("/:id/flag", h.Post.Flag)
		postGroup.DELETE("/:id", h.Post.DeletePost)
	}

	// 社区相关接口
	communityGroup := r.Group("/api/community")
	communityGroup.Use(middleware.AuthMiddleware())
	{
		communityGroup.POST("/create", h.Community.Create)
		communityGroup.GET("/list", h.Community.List)
	}

	// 审核相关接口，仅管理员
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		adminGroup.GET("/flagged", h.Admin.Flagged)
	}

	return r
}
