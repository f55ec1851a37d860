package router

import (
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/social-api/config"
	_ "github.com/d60-Lab/social-api/docs"
	"github.com/d60-Lab/social-api/internal/api/handler"
	"github.com/d60-Lab/social-api/internal/middleware"
)

// New 组装路由表；authMW 为鉴权中间件，测试可注入
func New(cfg *config.Config, h *handler.Handler, authMW gin.HandlerFunc) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	registerValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(otelgin.Middleware(cfg.Server.Name))
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if cfg.RateLimit.RPS > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	r.Static("/uploads", cfg.Upload.Dir)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	api := r.Group("/api")
	api.POST("/register", h.Register)
	api.POST("/login", h.Login)

	auth := api.Group("", authMW)
	auth.GET("/current", h.CurrentUser)
	auth.GET("/users/:id", h.GetUser)
	auth.PUT("/users/:id", h.UpdateUser)
	auth.GET("/users/:id/followers", h.ListFollowers)
	auth.GET("/users/:id/following", h.ListFollowing)

	auth.POST("/posts", h.CreatePost)
	auth.GET("/posts", h.ListPosts)
	auth.GET("/posts/:id", h.GetPost)
	auth.DELETE("/posts/:id", h.DeletePost)

	auth.POST("/comments", h.CreateComment)
	auth.DELETE("/comments/:id", h.DeleteComment)

	auth.POST("/likes", h.LikePost)
	auth.DELETE("/likes/:id", h.UnlikePost)

	auth.POST("/follow", h.Follow)
	auth.DELETE("/unfollow/:id", h.Unfollow)

	return r
}

// registerValidators 补充 binding 校验：dateonly = 2006-01-02
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("dateonly", func(fl validator.FieldLevel) bool {
			_, err := time.Parse(time.DateOnly, fl.Field().String())
			return err == nil
		})
	}
}
