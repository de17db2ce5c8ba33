package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/labstack/echo/v4"

	"storerating/docs"
	"storerating/internal/auth"
	"storerating/internal/cache"
	"storerating/internal/config"
	"storerating/internal/db"
	"storerating/internal/handler"
	"storerating/internal/logger"
	"storerating/internal/repository"
	"storerating/internal/router"
	"storerating/internal/service"
)

// @title Store Rating API
// @version 1.0
// @description Store rating platform with role-based access for admins, store owners and users.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, db.PoolOptions{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	}, log)
	if err != nil {
		log.WithError(err).Fatal("database init")
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		log.WithError(err).Fatal("database handle")
	}
	defer sqlDB.Close()

	if cfg.ResetDB {
		log.Warn("RESET_DB=true detected, dropping all tables")
		db.Reset(gormDB, log)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.WithError(err).Fatal("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	var cachePinger handler.Pinger
	if cacheClient != nil {
		cachePinger = handler.PingFunc(cacheClient.Ping)
	} else {
		log.Info("REDIS_ADDR not set, login throttling disabled")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	storeRepo := repository.NewStoreRepository(gormDB)
	ratingRepo := repository.NewRatingRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	throttle := auth.NewLoginThrottle(cacheClient, cfg.LoginMaxAttempts, cfg.LoginLockout)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, throttle)
	userService := service.NewUserService(userRepo, storeRepo)
	storeService := service.NewStoreService(storeRepo, userRepo)
	ratingService := service.NewRatingService(ratingRepo, storeRepo)
	ownerService := service.NewOwnerService(storeRepo, ratingRepo)
	dashboardService := service.NewDashboardService(userRepo, storeRepo, ratingRepo)

	e := echo.New()
	router.Register(e, cfg, log, jwtService, router.Handlers{
		Auth:   handler.NewAuthHandler(authService, log),
		Store:  handler.NewStoreHandler(storeService, ratingService, log),
		Admin:  handler.NewAdminHandler(userService, storeService, dashboardService, log),
		Owner:  handler.NewOwnerHandler(ownerService, log),
		Health: handler.NewHealthHandler(sqlDB, cachePinger),
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "http://"), "https://")
	}
	log.WithField("url", swaggerURL(cfg)).Info("swagger documentation available")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.ServerPort
		log.WithField("addr", addr).Info("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server start")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown")
	}
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return host + "/swagger/index.html"
}
