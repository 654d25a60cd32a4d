package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/micropost/config"
	_ "github.com/d60-Lab/micropost/docs"
	"github.com/d60-Lab/micropost/internal/api"
	"github.com/d60-Lab/micropost/internal/api/handler"
	"github.com/d60-Lab/micropost/internal/api/middleware"
	"github.com/d60-Lab/micropost/internal/auth"
	"github.com/d60-Lab/micropost/internal/cache"
	"github.com/d60-Lab/micropost/internal/repository"
	"github.com/d60-Lab/micropost/internal/service"
	"github.com/d60-Lab/micropost/pkg/database"
	"github.com/d60-Lab/micropost/pkg/logger"
	"github.com/d60-Lab/micropost/pkg/tracing"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// @title micropost API
// @version 1.0
// @description 多用户短贴服务
// @BasePath /
func main() {
	cfg := must(config.Load())
	log := must(logger.Init(cfg.LogLevel))
	defer log.Sync()

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			log.Fatal("sentry init", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := must(tracing.Init(ctx, cfg.OTLPEndpoint, "micropost"))
	defer shutdownTracing(context.Background())

	db := must(database.InitDB(cfg))
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	tokens := must(auth.NewTokenService(cfg.SecretKey, cfg.Algorithm))

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	userSvc := service.NewUserService(userRepo)
	postCache := cache.NewPostCache(rdb, cfg.CacheTTL)
	postSvc := service.NewPostService(postRepo, postCache)

	h := handler.NewHandler(userSvc, postSvc, tokens, cfg.TokenTTL)
	r := api.NewRouter(h, middleware.Auth(tokens, userSvc), log)

	srv := &http.Server{Addr: ":" + cfg.ServerPort, Handler: r}
	go func() {
		log.Info("server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}
