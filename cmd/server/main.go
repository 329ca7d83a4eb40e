package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/efoodhub/backend/internal/cache"
	"github.com/efoodhub/backend/internal/config"
	"github.com/efoodhub/backend/internal/es"
	"github.com/efoodhub/backend/internal/httpserver"
	"github.com/efoodhub/backend/internal/logging"
	loggingmw "github.com/efoodhub/backend/internal/middleware/logging"
	"github.com/efoodhub/backend/internal/models"
	"github.com/efoodhub/backend/internal/mykafka"
	"github.com/efoodhub/backend/internal/repo"
	"github.com/efoodhub/backend/internal/service"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	e := echo.New()
	e.HideBanner = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(loggingmw.RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{}, &models.Restaurant{}, &models.Food{}, &models.Address{},
		&models.Cart{}, &models.SubCart{}, &models.SubCartItem{},
		&models.Order{}, &models.OrderDetail{}, &models.Payment{}, &models.Review{},
	); err != nil {
		log.Fatalf("migrate error: %v", err)
	}

	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err = mykafka.NewProducer(cfg.KafkaBrokers, []string{
			mykafka.TopicCartEvents, mykafka.TopicOrderEvents, mykafka.TopicFoodEvents,
		})
		if err != nil {
			log.Fatalf("kafka init error: %v", err)
		}
		defer producer.Close()
	}

	redisClient := cache.New(cfg.RedisAddr, cfg.RedisPassword)
	defer redisClient.Close()

	gormRepo := &repo.GormRepo{DB: db}

	catalogSvc := &service.CatalogService{
		Repo:   gormRepo,
		Cache:  redisClient,
		Images: service.StaticImageStore{BaseURL: cfg.ImageBaseURL},
	}
	if cfg.ESURL != "" {
		client, err := es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		catalogSvc.ES = client
	}

	deps := &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{
			Svc: &service.AuthService{Repo: gormRepo, JWTSecret: cfg.JWTSecret},
		},
		CartHandler: &httpserver.CartHTTP{
			Svc:      &service.CartService{Repo: gormRepo, Cache: redisClient},
			Producer: producer,
		},
		OrderHandler: &httpserver.OrderHTTP{
			Checkout: &service.CheckoutService{Repo: gormRepo, Cache: redisClient, Gateway: service.WalletGateway{}},
			Orders:   &service.OrderService{Repo: gormRepo},
			Producer: producer,
		},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: catalogSvc, Producer: producer},
		ReviewHandler: &httpserver.ReviewHTTP{
			Svc: &service.ReviewService{Repo: gormRepo},
		},
		JWTSecret: cfg.JWTSecret,
	}
	httpserver.Register(e, deps)

	go func() {
		logger.Info("starting server", "port", cfg.ServerPort)
		if err := e.Start(fmt.Sprintf(":%d", cfg.ServerPort)); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Info("server stopped")
}
