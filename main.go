package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-dashboard/clients"
	"storefront-dashboard/config"
	"storefront-dashboard/controllers"
	"storefront-dashboard/logger"
	"storefront-dashboard/middleware"
	"storefront-dashboard/repository"
	"storefront-dashboard/routes"
	"storefront-dashboard/services"
)

func main() {
	cfg := config.Load()

	logger.Initialize(cfg.Env)
	defer logger.Sync()
	log := logger.Log

	var (
		sessionRepo repository.SessionRepository
		cartRepo    repository.CartRepository
		idemStore   repository.IdempotencyStore
	)

	if cfg.RedisURL != "" {
		client, err := repository.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Fatal("redis connection failed", zap.Error(err))
		}
		log.Info("using redis persistence", zap.String("url", cfg.RedisURL))
		sessionRepo = repository.NewRedisSessionRepository(client)
		redisCarts := repository.NewRedisCartRepository(client, cfg.CartTTL)
		cartRepo = redisCarts
		idemStore = redisCarts
	} else {
		log.Info("using file persistence", zap.String("data_dir", cfg.DataDir))
		sessionRepo = repository.NewFileSessionRepository(cfg.DataDir)
		cartRepo = repository.NewFileCartRepository(cfg.DataDir)
	}

	policy := services.NewAdminAllowList(cfg.AdminEmails)
	sessions := services.NewSessionService(sessionRepo, policy, log)
	if err := sessions.Restore(context.Background()); err != nil {
		log.Warn("session restore failed", zap.Error(err))
	}

	gateway := clients.NewGatewayClient(cfg.APIGatewayURL, cfg.RequestTimeout, sessions.Token)
	carts := services.NewCartService(cartRepo, log)
	dashboard := services.NewDashboardService(gateway, sessions, carts, idemStore, log)
	controller := controllers.NewDashboardController(dashboard, sessions, carts, gateway, log)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(middleware.RateLimit())

	routes.RegisterRoutes(r, controller, sessions)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info("storefront dashboard listening",
			zap.String("port", cfg.Port),
			zap.String("gateway", cfg.APIGatewayURL),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
}
