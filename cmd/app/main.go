package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tdea-viajes/travelbooking/config"
	"github.com/tdea-viajes/travelbooking/internal/bootstrap"
	"github.com/tdea-viajes/travelbooking/internal/cache"
	"github.com/tdea-viajes/travelbooking/internal/db"
	"github.com/tdea-viajes/travelbooking/internal/kafka"
	"github.com/tdea-viajes/travelbooking/internal/logging"
	"github.com/tdea-viajes/travelbooking/internal/repository"
	"github.com/tdea-viajes/travelbooking/internal/service/auth"
	"github.com/tdea-viajes/travelbooking/internal/service/bookings"
	"github.com/tdea-viajes/travelbooking/internal/service/payments"
	"github.com/tdea-viajes/travelbooking/internal/service/travels"
)

func main() {
	logging.Init()
	defer logging.Sync()
	log := logging.L()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.Migrate(cfg.Database); err != nil {
		log.Fatal("run migrations", zap.Error(err))
	}

	pool, err := db.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Travels.CacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	userRepo := repository.NewUserRepository(pool)
	travelRepo := repository.NewTravelRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)

	authService := auth.NewAuthService(userRepo)
	travelService := travels.NewTravelService(travelRepo, redisCache)
	bookingService := bookings.NewBookingService(
		bookingRepo,
		userRepo,
		travelRepo,
		producer,
		cfg.Kafka.BookingTopic,
		bookings.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)
	paymentService := payments.NewPaymentService(paymentRepo, bookingRepo, producer, cfg.Kafka.BookingTopic)

	log.Info("starting http server", zap.String("address", cfg.HTTP.Address))
	if err := bootstrap.Run(ctx, cfg, authService, travelService, bookingService, paymentService); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
