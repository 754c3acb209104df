package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/finegraphics/printstore/internal/config"
	"github.com/finegraphics/printstore/internal/db"
	"github.com/finegraphics/printstore/internal/events"
	"github.com/finegraphics/printstore/internal/httpserver"
	"github.com/finegraphics/printstore/internal/logging"
	"github.com/finegraphics/printstore/internal/repo"
	"github.com/finegraphics/printstore/internal/search"
	"github.com/finegraphics/printstore/internal/service"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)
	slog.SetDefault(logger)

	ctx := context.Background()

	stores, err := openStores(ctx, configuration)
	if err != nil {
		logger.Error("store init failed", "error", err)
		os.Exit(1)
	}
	if err := stores.Migrate(); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	adminRepo := &repo.AdminRepo{DB: stores.Admin}
	if err := adminRepo.SeedDefault(ctx, "admin", "admin123"); err != nil {
		logger.Error("admin seed failed", "error", err)
		os.Exit(1)
	}

	var producer *events.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = events.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	catalogHTTP := &httpserver.CatalogHTTP{
		Svc:      &service.CatalogService{Repo: &repo.DesignRepo{DB: stores.Designs}},
		Producer: producer,
		Index:    search.DefaultIndex,
	}
	if configuration.ES_URL != "" {
		esClient, err := search.NewClient(configuration)
		if err != nil {
			logger.Error("elasticsearch init failed", "error", err)
			os.Exit(1)
		}
		catalogHTTP.ES = esClient
	}

	userRepo := &repo.UserRepo{DB: stores.Users}
	orderRepo := &repo.OrderRepo{DB: stores.Orders}
	jwtSecret := []byte(configuration.JWT_SECRET)

	deps := &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{
			Svc:      &service.AuthService{Users: userRepo, Admins: adminRepo, JWTSecret: jwtSecret},
			Producer: producer,
		},
		AccountHandler:   &httpserver.AccountHTTP{Svc: &service.AccountService{Repo: userRepo}},
		CatalogHandler:   catalogHTTP,
		OrderHandler:     &httpserver.OrderHTTP{Svc: service.NewOrderService(orderRepo), Producer: producer},
		AnalyticsHandler: &httpserver.AnalyticsHTTP{Svc: service.NewAnalyticsService(orderRepo, userRepo)},
		JWTSecret:        jwtSecret,
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), logger)))
			return next(c)
		}
	})

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", configuration.HTTP_ADDR)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	for _, g := range []*gorm.DB{stores.Users, stores.Orders, stores.Admin, stores.Designs} {
		if sqlDB, err := g.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Error("store close error", "error", err)
			}
		}
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

func openStores(ctx context.Context, cfg *config.Config) (*db.Stores, error) {
	users, err := db.Open(ctx, cfg.USERS_DSN)
	if err != nil {
		return nil, err
	}
	orders, err := db.Open(ctx, cfg.ORDERS_DSN)
	if err != nil {
		return nil, err
	}
	admin, err := db.Open(ctx, cfg.ADMIN_DSN)
	if err != nil {
		return nil, err
	}
	designs, err := db.Open(ctx, cfg.DESIGNS_DSN)
	if err != nil {
		return nil, err
	}
	return &db.Stores{Users: users, Orders: orders, Admin: admin, Designs: designs}, nil
}
