package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/microblog/config"
	"github.com/d60-Lab/microblog/internal/api"
	"github.com/d60-Lab/microblog/internal/api/handler"
	"github.com/d60-Lab/microblog/internal/cache"
	"github.com/d60-Lab/microblog/internal/mailer"
	"github.com/d60-Lab/microblog/internal/repository"
	"github.com/d60-Lab/microblog/internal/service"
	"github.com/d60-Lab/microblog/pkg/database"
	"github.com/d60-Lab/microblog/pkg/logger"
	"github.com/d60-Lab/microblog/pkg/telemetry"
)

func must[T any](v T, err error) T { if err != nil { panic(err) }; return v }

func main() {
	cfg := must(config.Load())
	log := must(logger.New(cfg.Server.Mode))
	defer log.Sync()

	if cfg.Server.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	sentryEnabled := cfg.Sentry.DSN != ""
	if sentryEnabled {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			log.Warn("sentry init failed", zap.Error(err))
			sentryEnabled = false
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := must(telemetry.Init(ctx, "microblog", cfg.Telemetry.OTLPEndpoint))
	defer shutdownTracing(context.Background())

	db := must(database.InitDB(cfg))

	var statsCache *cache.FollowerStatsCache
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		statsCache = cache.NewFollowerStatsCache(client, cfg.Redis.TTL)
	}

	var mail mailer.Mailer
	if cfg.Mail.Host != "" {
		mail = mailer.NewSMTPMailer(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password, cfg.Mail.From)
	} else {
		mail = mailer.NewLogMailer(log)
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	followRepo := repository.NewFollowRepository(db)

	userSvc := service.NewUserService(userRepo, log)
	postSvc := service.NewPostService(postRepo, cfg.Feed.PostsPerPage)
	relSvc := service.NewRelationshipService(followRepo, statsCache, log)
	tokenSvc := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	resetSvc := service.NewPasswordResetService(userRepo, mail, cfg.Auth.JWTSecret, cfg.Auth.ResetTokenTTL, log)

	h := handler.New(userSvc, postSvc, relSvc, tokenSvc, resetSvc)
	router := api.NewRouter(h, tokenSvc, userSvc, log, sentryEnabled)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
}
