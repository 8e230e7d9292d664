package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tdea-viajes/travelbooking/config"
	"github.com/tdea-viajes/travelbooking/internal/db"
	"github.com/tdea-viajes/travelbooking/internal/email"
	"github.com/tdea-viajes/travelbooking/internal/kafka"
	"github.com/tdea-viajes/travelbooking/internal/logging"
	"github.com/tdea-viajes/travelbooking/internal/repository"
	"github.com/tdea-viajes/travelbooking/internal/service/bookings"
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

	pool, err := db.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	userRepo := repository.NewUserRepository(pool)
	travelRepo := repository.NewTravelRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	bookingService := bookings.NewBookingService(
		bookingRepo,
		userRepo,
		travelRepo,
		producer,
		cfg.Kafka.BookingTopic,
		bookings.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender()

	go func() {
		if err := consumer.Consume(ctx, emailSender.Send); err != nil {
			log.Warn("consumer stopped", zap.Error(err))
		}
	}()

	sweep := time.NewTicker(time.Duration(cfg.Worker.NoShowSweepMinutes) * time.Minute)
	defer sweep.Stop()

	for {
		select {
		case <-sweep.C:
			marked, err := bookingService.MarkNoShows(ctx)
			if err != nil {
				log.Warn("no-show sweep", zap.Error(err))
				continue
			}
			if len(marked) > 0 {
				log.Info("marked no-shows", zap.Int("count", len(marked)))
			}
		case <-ctx.Done():
			log.Info("shutting down")
			return
		}
	}
}
