package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// 非空校验在 handler 边界完成，不合法的请求体不会碰到存储层，
// 所以这里用空服务构建 handler 也安全
func newCreatePostRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewPostHandler(nil, nil)
	r.POST("/api/post/create", h.CreatePost)
	return r
}

func TestCreatePostRejectsEmptyTags(t *testing.T) {
	r := newCreatePostRouter()

	tests := []struct {
		name string
		body string
	}{
		{"empty tags", `{"title":"t","content":"c","tags":[]}`},
		{"missing tags", `{"title":"t","content":"c"}`},
		{"empty title", `{"title":"","content":"c","tags":["general"]}`},
		{"missing content", `{"title":"t","tags":["general"]}`},
		{"not json", `tags=general`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/post/create", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "invalid params")
		})
	}
}
