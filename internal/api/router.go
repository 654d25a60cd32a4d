package api

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/d60-Lab/micropost/internal/api/handler"
	"github.com/d60-Lab/micropost/internal/api/middleware"
)

// NewRouter 装配路由与中间件；authMW 只挂在 /posts 组
func NewRouter(h *handler.Handler, authMW gin.HandlerFunc, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Recovery(log),
		gzip.Gzip(gzip.DefaultCompression),
		otelgin.Middleware("micropost"),
	)

	r.GET("/healthz", h.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)

	posts := r.Group("/posts", authMW)
	posts.POST("", h.CreatePost)
	posts.GET("", h.ListPosts)
	posts.DELETE("/:id", h.DeletePost)

	return r
}
