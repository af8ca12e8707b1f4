package booking

import (
	"context"
	"fmt"
	"log"

	"github.com/zvrva/railbooking/internal/domain"
	"github.com/zvrva/railbooking/internal/kafka"
	"github.com/zvrva/railbooking/internal/repository"
)

type BookingUseCase interface {
	Book(ctx context.Context, user *domain.User, trainNo string) (*domain.BookingDetails, error)
	GetBooking(ctx context.Context, id int64, requester *domain.User) (*domain.BookingDetails, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings     repository.BookingRepository
	trains       repository.TrainRepository
	producer     Producer
	bookingTopic string
}

func NewBookingService(
	bookings repository.BookingRepository,
	trains repository.TrainRepository,
	producer Producer,
	bookingTopic string,
) *BookingService {
	return &BookingService{
		bookings:     bookings,
		trains:       trains,
		producer:     producer,
		bookingTopic: bookingTopic,
	}
}

// Book claims one free seat on the train for the user. The claim and the
// booking record are written in a single transaction by the repository, so
// either both exist afterwards or neither does.
func (s *BookingService) Book(ctx context.Context, user *domain.User, trainNo string) (*domain.BookingDetails, error) {
	if trainNo == "" {
		return nil, fmt.Errorf("%w: train number is required", domain.ErrInvalidInput)
	}

	train, err := s.trains.GetByNo(ctx, trainNo)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookings.ClaimSeat(ctx, user.ID, train.TrainNo)
	if err != nil {
		return nil, err
	}

	if err := s.publish(ctx, "booking_created", booking); err != nil {
		log.Printf("WARNING: failed to publish booking_created event for booking %d: %v", booking.ID, err)
	}

	return &domain.BookingDetails{
		BookingID:   booking.ID,
		TrainNo:     train.TrainNo,
		SeatNo:      booking.SeatNo,
		Source:      train.Source,
		Destination: train.Destination,
		Username:    user.Username,
		BookedAt:    booking.CreatedAt,
	}, nil
}

// GetBooking resolves a booking visible to the requester. Bookings owned by
// other users come back as ErrBookingNotFound, never as a permission error.
func (s *BookingService) GetBooking(ctx context.Context, id int64, requester *domain.User) (*domain.BookingDetails, error) {
	return s.bookings.GetByIDForUser(ctx, id, requester.ID)
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:      eventType,
		BookingID: booking.ID,
		TrainNo:   booking.TrainNo,
		SeatNo:    booking.SeatNo,
		UserID:    booking.UserID,
		CreatedAt: booking.CreatedAt,
	}
	return s.producer.Publish(ctx, s.bookingTopic, booking.TrainNo, event)
}

var _ BookingUseCase = (*BookingService)(nil)
