package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studentmart-be/internal/analytics"
	"studentmart-be/internal/cart"
	"studentmart-be/internal/checkout"
	"studentmart-be/internal/config"
	"studentmart-be/internal/db"
	"studentmart-be/internal/imagehost"
	"studentmart-be/internal/logger"
	"studentmart-be/internal/message"
	"studentmart-be/internal/metrics"
	"studentmart-be/internal/middleware"
	"studentmart-be/internal/order"
	"studentmart-be/internal/product"
	"studentmart-be/internal/transport"
	"studentmart-be/internal/user"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	database := db.InitDB(cfg)
	defer database.Close()

	checkoutMetrics := &metrics.Checkout{}

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	cartStore := cart.NewStore()
	cartSvc := cart.NewService(cartStore, productRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo)

	checkoutSvc := checkout.NewService(cartStore, productRepo, orderRepo, checkoutMetrics)
	analyticsSvc := analytics.NewService(orderRepo)

	messageRepo := message.NewRepository(database)
	messageSvc := message.NewService(messageRepo)

	uploader := imagehost.NewClient(cfg.ImageUploadURL, cfg.ImageUploadPreset)

	handler := transport.NewHandler(
		userSvc, productSvc, cartSvc, checkoutSvc, orderSvc,
		analyticsSvc, messageSvc, uploader, checkoutMetrics,
	)
	router := transport.NewRouter(handler, middleware.NewRateLimiter())

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: router,
	}

	go func() {
		log.Info("server listening", zap.String("port", cfg.AppPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
