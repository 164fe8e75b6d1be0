package main

import (
	"log"
	"net/http"

	_ "ridenbite/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"ridenbite/internal/auth"
	"ridenbite/internal/cache"
	"ridenbite/internal/config"
	"ridenbite/internal/db"
	"ridenbite/internal/events"
	"ridenbite/internal/handler"
	"ridenbite/internal/metrics"
	"ridenbite/internal/model"
	"ridenbite/internal/repository"
	"ridenbite/internal/router"
	"ridenbite/internal/service"
	"ridenbite/internal/storage"
	"ridenbite/internal/ws"
)

// @title Ridenbite Platform API
// @version 1.0
// @description Food delivery platform API with restaurant approval, order lifecycle tracking and admin notifications.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.RiderProfile{},
		&model.Restaurant{},
		&model.RestaurantProfile{},
		&model.MenuItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.AdminNotification{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	restaurantRepo := repository.NewRestaurantRepository(gormDB)
	menuRepo := repository.NewMenuRepository(gormDB)
	orderRepo := repository.NewOrderRepository(gormDB)
	notificationRepo := repository.NewNotificationRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTAccessSecret, cfg.JWTRefreshSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize infrastructure
	imageStore := storage.NewDiskStore(cfg.UploadDir)
	publisher := events.NewPublisher(cfg.KafkaBrokers)
	defer publisher.Close()

	hub := ws.NewHub()
	go hub.Run()

	serverMetrics := metrics.NewServerMetrics()

	// Initialize services
	notificationService := service.NewNotificationService(notificationRepo, cacheClient, hub, publisher)
	authService := service.NewAuthService(userRepo, restaurantRepo, jwtService, tokenStore, imageStore, notificationService)
	orderService := service.NewOrderService(orderRepo, restaurantRepo, menuRepo, userRepo, notificationService, publisher)
	restaurantService := service.NewRestaurantService(restaurantRepo, userRepo, notificationService, cacheClient)
	menuService := service.NewMenuService(menuRepo, restaurantRepo)
	analyticsService := service.NewAnalyticsService(orderRepo, userRepo, restaurantRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	restaurantHandler := handler.NewRestaurantHandler(restaurantService, orderService, menuService, analyticsService)
	orderHandler := handler.NewOrderHandler(orderService)
	adminHandler := handler.NewAdminHandler(restaurantService, orderService, notificationService, analyticsService)
	streamHandler := handler.NewStreamHandler(jwtService, hub)

	// Register routes
	router.Register(
		e,
		cfg,
		serverMetrics,
		tokenStore,
		authHandler,
		restaurantHandler,
		orderHandler,
		adminHandler,
		streamHandler,
	)

	if publisher.Enabled() {
		log.Printf("event publishing enabled, brokers: %s", cfg.KafkaBrokers)
	} else {
		log.Println("event publishing disabled (no KAFKA_BROKERS configured)")
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
