package handler

import (
	"net/http"

	"Connect_Hub/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler 审核视图，路由挂在 AdminMiddleware 之后
type AdminHandler struct {
	content *service.ContentService
}

func NewAdminHandler(content *service.ContentService) *AdminHandler {
	return &AdminHandler{content: content}
}

// Flagged 全部被举报的帖子，可按关键字过滤
func (h *AdminHandler) Flagged(c *gin.Context) {
	list := service.FlaggedPosts(h.content.Posts(), c.Query("search"))
	c.JSON(http.StatusOK, gin.H{"list": list, "count": len(list)})
}
