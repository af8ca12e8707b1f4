package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/zvrva/railbooking/config"
)

// BookingEventHandler processes one decoded booking event.
type BookingEventHandler func(ctx context.Context, event BookingEvent) error

// Consumer reads booking events from a topic and hands decoded events to a
// handler. Messages that fail to decode are logged and skipped; handler
// errors stop the loop.
type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(cfg config.KafkaConfig, topic string) *Consumer {
	heartbeat := time.Duration(cfg.HeartbeatIntervalSeconds) * time.Second
	if heartbeat <= 0 {
		heartbeat = 3 * time.Second
	}
	session := time.Duration(cfg.SessionTimeoutSeconds) * time.Second
	if session <= 0 {
		session = 30 * time.Second
	}

	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           cfg.Brokers,
			GroupID:           cfg.GroupID,
			Topic:             topic,
			HeartbeatInterval: heartbeat,
			SessionTimeout:    session,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

func (c *Consumer) Consume(ctx context.Context, handler BookingEventHandler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		event, err := decodeBookingEvent(msg.Value)
		if err != nil {
			log.Printf("skipping undecodable message at offset %d: %v", msg.Offset, err)
			continue
		}

		if err := handler(ctx, event); err != nil {
			return err
		}
	}
}

func decodeBookingEvent(data []byte) (BookingEvent, error) {
	var event BookingEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return BookingEvent{}, fmt.Errorf("failed to decode booking event: %w", err)
	}
	if event.TrainNo == "" {
		return BookingEvent{}, fmt.Errorf("booking event has no train number")
	}
	return event, nil
}
