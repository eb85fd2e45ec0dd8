package api

import (
	"regexp"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	_ "github.com/d60-Lab/microblog/docs"
	"github.com/d60-Lab/microblog/internal/api/handler"
	"github.com/d60-Lab/microblog/internal/api/middleware"
	"github.com/d60-Lab/microblog/internal/service"
	"github.com/d60-Lab/microblog/pkg/response"
)

var usernameRx = regexp.MustCompile(`^[A-Za-z0-9_]{1,64}$`)

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernameRx.MatchString(fl.Field().String())
		})
	}
}

// NewRouter assembles the gin engine: middleware stack, public routes,
// and the authenticated group.
func NewRouter(h *handler.Handler, tokens *service.TokenService, users service.UserService, log *zap.Logger, sentryEnabled bool) *gin.Engine {
	registerValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	if sentryEnabled {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	r.Use(middleware.RequestLogger(log))
	r.Use(otelgin.Middleware("microblog"))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// One shared bucket set for the abuse-prone endpoints.
	authLimit := middleware.RateLimit(rate.Every(time.Second), 10)
	auth := v1.Group("/auth")
	auth.POST("/register", authLimit, h.Register)
	auth.POST("/login", authLimit, h.Login)
	auth.POST("/reset-password", authLimit, h.RequestPasswordReset)
	auth.PUT("/reset-password/:token", h.CompletePasswordReset)

	v1.GET("/explore", h.Explore)
	v1.GET("/users", h.ListUsers)
	v1.GET("/users/:username", h.GetUser)
	v1.GET("/users/:username/posts", h.UserPosts)
	v1.GET("/users/:username/following", h.ListFollowing)
	v1.GET("/users/:username/followers", h.ListFollowers)
	v1.GET("/users/:username/stats", h.FollowerStats)

	authed := v1.Group("")
	authed.Use(middleware.Auth(tokens, users))
	authed.GET("/feed", h.HomeFeed)
	authed.POST("/posts", h.CreatePost)
	authed.PUT("/users/me", h.UpdateProfile)
	authed.POST("/users/:username/follow", h.Follow)
	authed.POST("/users/:username/unfollow", h.Unfollow)

	return r
}
