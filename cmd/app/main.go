package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/railbooking/config"
	"github.com/zvrva/railbooking/internal/bootstrap"
	"github.com/zvrva/railbooking/internal/cache"
	"github.com/zvrva/railbooking/internal/kafka"
	"github.com/zvrva/railbooking/internal/repository"
	"github.com/zvrva/railbooking/internal/service/auth"
	"github.com/zvrva/railbooking/internal/service/booking"
	"github.com/zvrva/railbooking/internal/service/trains"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.AvailabilityCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	userRepo := repository.NewUserRepository(pool)
	trainRepo := repository.NewTrainRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	authService := auth.NewAuthService(userRepo, cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour, cfg.Auth.BcryptCost)
	trainService := trains.NewTrainService(trainRepo, redisCache, producer, cfg.Kafka.TrainTopic)
	bookingService := booking.NewBookingService(bookingRepo, trainRepo, producer, cfg.Kafka.BookingTopic)

	if err := bootstrap.Run(ctx, cfg, authService, trainService, bookingService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
