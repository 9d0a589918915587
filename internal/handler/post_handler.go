package handler

import (
	"errors"
	"net/http"
	"strings"

	"Connect_Hub/internal/middleware"
	"Connect_Hub/internal/model"
	"Connect_Hub/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	content *service.ContentService
	users   *service.UserService
}

// CreatePostReq 标题、正文、标签的非空校验在这一层完成，存储层不再复查
type CreatePostReq struct {
	Title       string   `json:"title" binding:"required"`
	Content     string   `json:"content" binding:"required"`
	Tags        []string `json:"tags" binding:"required,min=1"`
	IsAnonymous bool     `json:"isAnonymous"`
}

func NewPostHandler(content *service.ContentService, users *service.UserService) *PostHandler {
	return &PostHandler{content: content, users: users}
}

// actor 从中间件注入的 claims 还原操作者
func actor(c *gin.Context) *model.User {
	userIDAny, _ := c.Get(middleware.ContextUserIDKey)
	isAdminAny, _ := c.Get(middleware.ContextIsAdminKey)
	userID, _ := userIDAny.(string)
	isAdmin, _ := isAdminAny.(bool)
	return &model.User{ID: userID, IsAdmin: isAdmin}
}

// CreatePost 创建帖子接口
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req CreatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	// 发帖需要作者展示名，从会话记录取
	user, err := h.users.GetUser(c.Request.Context(), actor(c).ID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "session expired"})
		return
	}

	post, err := h.content.CreatePost(c.Request.Context(), user, service.CreatePostInput{
		Title:       req.Title,
		Content:     req.Content,
		Tags:        req.Tags,
		IsAnonymous: req.IsAnonymous,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// Feed 获取帖子列表：search/tags/sort/dir 都是临时视图状态
func (h *PostHandler) Feed(c *gin.Context) {
	opts := service.FeedOptions{
		Search:    c.Query("search"),
		Sort:      service.SortMode(c.DefaultQuery("sort", string(service.SortUpvotes))),
		Ascending: c.Query("dir") == "asc",
	}
	if tags := c.Query("tags"); tags != "" {
		opts.Tags = strings.Split(tags, ",")
	}

	list := service.BuildFeed(h.content.Posts(), actor(c), opts)
	c.JSON(http.StatusOK, gin.H{"list": list})
}

// Upvote 点赞开关，再点一次取消
func (h *PostHandler) Upvote(c *gin.Context) {
	postID := c.Param("id")
	if err := h.content.UpvotePost(c.Request.Context(), actor(c), postID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Flag 举报，单向且幂等
func (h *PostHandler) Flag(c *gin.Context) {
	postID := c.Param("id")
	if err := h.content.FlagPost(c.Request.Context(), actor(c), postID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "post has been flagged for review"})
}

// DeletePost 删除帖子接口，非管理员由存储层拒绝
func (h *PostHandler) DeletePost(c *gin.Context) {
	postID := c.Param("id")
	err := h.content.DeletePost(c.Request.Context(), actor(c), postID)
	if errors.Is(err, service.ErrNotAuthorized) {
		c.JSON(http.StatusForbidden, gin.H{"msg": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}
