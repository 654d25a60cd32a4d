package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/micropost/internal/api/middleware"
	"github.com/d60-Lab/micropost/internal/service"
	"github.com/d60-Lab/micropost/pkg/response"
)

type postRequest struct {
	Text string `json:"text" binding:"required,max=1048576"`
}

// CreatePost 为当前用户创建帖子
// @Summary 发帖
// @Tags 帖子
// @Accept json
// @Produce json
// @Param request body postRequest true "帖子内容"
// @Param Authorization header string true "Bearer 令牌"
// @Success 201 {object} model.Post
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user := middleware.CurrentUser(c)
	post, err := h.posts.Create(c.Request.Context(), user, req.Text)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, post)
}

// ListPosts 列出当前用户的全部帖子
// @Summary 帖子列表
// @Tags 帖子
// @Produce json
// @Param Authorization header string true "Bearer 令牌"
// @Success 200 {array} model.Post
// @Failure 401 {object} map[string]string
// @Router /posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	user := middleware.CurrentUser(c)
	posts, err := h.posts.List(c.Request.Context(), user)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, posts)
}

// DeletePost 删除当前用户的指定帖子
// @Summary 删帖
// @Tags 帖子
// @Param id path int true "帖子ID"
// @Param Authorization header string true "Bearer 令牌"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}
	user := middleware.CurrentUser(c)
	if err := h.posts.Delete(c.Request.Context(), user, uint(id)); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			response.NotFound(c, "post not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
