package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/micropost/internal/service"
	"github.com/d60-Lab/micropost/pkg/response"
)

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Signup 注册新用户并签发访问令牌
// @Summary 用户注册
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body signupRequest true "注册信息"
// @Success 201 {object} tokenResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /signup [post]
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, err := h.users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateEmail) {
			response.BadRequest(c, "email already registered")
			return
		}
		response.InternalError(c, err)
		return
	}
	token, err := h.tokens.Issue(user.Email, h.tokenTTL)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Login 口令认证并签发访问令牌
// @Summary 用户登录
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body loginRequest true "登录信息"
// @Success 200 {object} tokenResponse
// @Failure 401 {object} map[string]string
// @Router /login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, "invalid credentials")
			return
		}
		response.InternalError(c, err)
		return
	}
	token, err := h.tokens.Issue(user.Email, h.tokenTTL)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, tokenResponse{AccessToken: token, TokenType: "bearer"})
}
