package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/social-api/config"
	"github.com/d60-Lab/social-api/internal/api/handler"
	"github.com/d60-Lab/social-api/internal/api/router"
	"github.com/d60-Lab/social-api/internal/cache"
	"github.com/d60-Lab/social-api/internal/middleware"
	"github.com/d60-Lab/social-api/internal/repository"
	"github.com/d60-Lab/social-api/internal/service"
	"github.com/d60-Lab/social-api/pkg/avatar"
	"github.com/d60-Lab/social-api/pkg/database"
	"github.com/d60-Lab/social-api/pkg/jwt"
	"github.com/d60-Lab/social-api/pkg/logger"
	"github.com/d60-Lab/social-api/pkg/tracing"
)

// @title Social API
// @version 1.0
// @description 社交网络后端：注册/登录、资料、帖子、评论、点赞、关注
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("load config: %v", err))
	}
	if err := logger.Init(cfg.Log.Level); err != nil {
		panic(fmt.Sprintf("init logger: %v", err))
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	shutdownTracer, err := tracing.Init(ctx, cfg.Server.Name, cfg.Trace.Endpoint)
	if err != nil {
		logger.Fatal("init tracing", zap.Error(err))
	}
	defer func() { _ = shutdownTracer(context.Background()) }()

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Fatal("init database", zap.Error(err))
	}

	var followerCache *cache.FollowerCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		followerCache = cache.New(rdb, cfg.Redis.TTL)
	}

	avatars, err := avatar.NewGenerator(cfg.Upload.Dir)
	if err != nil {
		logger.Fatal("init avatar generator", zap.Error(err))
	}
	tokens := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TTL)

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	followRepo := repository.NewFollowRepository(db)

	userSvc := service.NewUserService(userRepo, followRepo, tokens, avatars)
	postSvc := service.NewPostService(postRepo)
	commentSvc := service.NewCommentService(commentRepo, postRepo)
	likeSvc := service.NewLikeService(likeRepo, postRepo)
	relSvc := service.NewRelationshipService(followRepo, userRepo, followerCache)

	h := handler.New(userSvc, postSvc, commentSvc, likeSvc, relSvc, avatars)
	r := router.New(cfg, h, middleware.JWTAuth(tokens))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r,
	}
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
