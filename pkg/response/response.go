package response

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Success 200 + 负载原样返回
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created 201 + 负载原样返回
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// NoContent 204
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest 400
func BadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}

// Unauthorized 401，附带 WWW-Authenticate: Bearer 提示
func Unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

// NotFound 404
func NotFound(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": msg})
}

// InternalError 500；细节只进日志和 Sentry，不回给客户端
func InternalError(c *gin.Context, err error) {
	zap.L().Error("internal error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	sentry.CaptureException(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
