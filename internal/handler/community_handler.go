package handler

import (
	"errors"
	"net/http"

	"Connect_Hub/internal/service"

	"github.com/gin-gonic/gin"
)

type CommunityHandler struct {
	content *service.ContentService
}

type CommunityCreateReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func NewCommunityHandler(content *service.ContentService) *CommunityHandler {
	return &CommunityHandler{content: content}
}

func (h *CommunityHandler) Create(c *gin.Context) {
	var req CommunityCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	community, err := h.content.CreateCommunity(c.Request.Context(), actor(c), req.Name, req.Description)
	if errors.Is(err, service.ErrCommunityExists) {
		c.JSON(http.StatusConflict, gin.H{"msg": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          community.ID,
		"name":        community.Name,
		"description": community.Description,
	})
}

func (h *CommunityHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"list": h.content.Communities()})
}
