package trains

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/zvrva/railbooking/internal/domain"
	"github.com/zvrva/railbooking/internal/kafka"
	"github.com/zvrva/railbooking/internal/repository"
)

type TrainUseCase interface {
	Create(ctx context.Context, input CreateTrainInput) (*domain.Train, error)
	Search(ctx context.Context, source, destination string) ([]domain.TrainAvailability, error)
}

// AvailabilityCache serves free-seat counts for reporting. A stale count is
// acceptable here; the booking path never reads it.
type AvailabilityCache interface {
	GetAvailability(ctx context.Context, trainNo string) (int, bool, error)
	SetAvailability(ctx context.Context, trainNo string, count int) error
	InvalidateAvailability(ctx context.Context, trainNo string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type TrainService struct {
	repo       repository.TrainRepository
	cache      AvailabilityCache
	producer   Producer
	trainTopic string
}

type CreateTrainInput struct {
	TrainNo     string `json:"train_no"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	TotalSeats  int    `json:"total_seats"`
}

func NewTrainService(repo repository.TrainRepository, cache AvailabilityCache, producer Producer, trainTopic string) *TrainService {
	return &TrainService{repo: repo, cache: cache, producer: producer, trainTopic: trainTopic}
}

// Create registers a train and provisions its seat pool in one atomic step.
func (s *TrainService) Create(ctx context.Context, input CreateTrainInput) (*domain.Train, error) {
	input.TrainNo = strings.TrimSpace(input.TrainNo)
	if input.TrainNo == "" {
		return nil, fmt.Errorf("%w: train number is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(input.Source) == "" || strings.TrimSpace(input.Destination) == "" {
		return nil, fmt.Errorf("%w: source and destination are required", domain.ErrInvalidInput)
	}
	if input.TotalSeats < 1 {
		return nil, fmt.Errorf("%w: total seats must be at least 1", domain.ErrInvalidInput)
	}

	train := &domain.Train{
		TrainNo:     input.TrainNo,
		Source:      input.Source,
		Destination: input.Destination,
		TotalSeats:  input.TotalSeats,
	}
	if err := s.repo.CreateWithSeats(ctx, train); err != nil {
		return nil, err
	}

	if s.producer != nil && s.trainTopic != "" {
		event := kafka.TrainEvent{
			Type:        "train_created",
			TrainNo:     train.TrainNo,
			Source:      train.Source,
			Destination: train.Destination,
			TotalSeats:  train.TotalSeats,
		}
		if err := s.producer.Publish(ctx, s.trainTopic, train.TrainNo, event); err != nil {
			log.Printf("WARNING: failed to publish train_created event for train %s: %v", train.TrainNo, err)
		}
	}

	return train, nil
}

// Search lists trains matching the route and reports a free-seat count per
// train, served from cache when present.
func (s *TrainService) Search(ctx context.Context, source, destination string) ([]domain.TrainAvailability, error) {
	trains, err := s.repo.Search(ctx, source, destination)
	if err != nil {
		return nil, err
	}

	results := make([]domain.TrainAvailability, 0, len(trains))
	for _, t := range trains {
		available, err := s.availability(ctx, t.TrainNo)
		if err != nil {
			return nil, err
		}
		results = append(results, domain.TrainAvailability{
			TrainNo:        t.TrainNo,
			Source:         t.Source,
			Destination:    t.Destination,
			TotalSeats:     t.TotalSeats,
			AvailableSeats: available,
		})
	}
	return results, nil
}

func (s *TrainService) availability(ctx context.Context, trainNo string) (int, error) {
	if s.cache != nil {
		if count, ok, err := s.cache.GetAvailability(ctx, trainNo); err == nil && ok {
			return count, nil
		}
	}

	count, err := s.repo.CountFreeSeats(ctx, trainNo)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		_ = s.cache.SetAvailability(ctx, trainNo, count)
	}
	return count, nil
}

var _ TrainUseCase = (*TrainService)(nil)
