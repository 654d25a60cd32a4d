package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/micropost/internal/auth"
	"github.com/d60-Lab/micropost/internal/service"
	"github.com/d60-Lab/micropost/pkg/response"
)

// Handler 汇聚各业务依赖
type Handler struct {
	users    service.UserService
	posts    service.PostService
	tokens   *auth.TokenService
	tokenTTL time.Duration
}

// NewHandler tokenTTL 为登录/注册签发的令牌有效期，零值取 1 小时
func NewHandler(users service.UserService, posts service.PostService, tokens *auth.TokenService, tokenTTL time.Duration) *Handler {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &Handler{users: users, posts: posts, tokens: tokens, tokenTTL: tokenTTL}
}

// Health 健康检查
// @Summary 健康检查
// @Tags 运维
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func (h *Handler) Health(c *gin.Context) {
	response.Success(c, gin.H{"status": "ok"})
}
