package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zvrva/railbooking/config"
	"github.com/zvrva/railbooking/internal/cache"
	"github.com/zvrva/railbooking/internal/kafka"
)

// The worker keeps the reported free-seat counts fresh: every booking event
// drops the cached availability of the affected train so the next route
// search recounts from the seat ledger.
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

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.AvailabilityCacheTTL)*time.Second)

	consumer := kafka.NewConsumer(cfg.Kafka, cfg.Kafka.BookingTopic)
	defer consumer.Close()

	err = consumer.Consume(ctx, func(ctx context.Context, event kafka.BookingEvent) error {
		if err := redisCache.InvalidateAvailability(ctx, event.TrainNo); err != nil {
			log.Printf("invalidate availability for train %s: %v", event.TrainNo, err)
		}
		return nil
	})
	if err != nil && ctx.Err() == nil {
		log.Printf("consumer stopped: %v", err)
	}
}
