package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/railbooking/internal/domain"
)

type BookingRepository interface {
	ClaimSeat(ctx context.Context, userID int64, trainNo string) (*domain.Booking, error)
	GetByIDForUser(ctx context.Context, id, userID int64) (*domain.BookingDetails, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

// ClaimSeat books the lowest-numbered free seat of the train for the user
// and records the booking, all in one transaction. FOR UPDATE SKIP LOCKED
// makes concurrent claimants take distinct rows instead of queueing on the
// same one; when every free row is taken or locked the claim fails with
// ErrNoSeatsAvailable.
func (r *PGBookingRepository) ClaimSeat(ctx context.Context, userID int64, trainNo string) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var (
		seatID int64
		seatNo int
	)
	err = tx.QueryRow(ctx, `SELECT id, seat_no FROM seats WHERE train_no=$1 AND NOT is_booked ORDER BY seat_no LIMIT 1 FOR UPDATE SKIP LOCKED`, trainNo).
		Scan(&seatID, &seatNo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoSeatsAvailable
		}
		return nil, err
	}

	if _, err := tx.Exec(ctx, `UPDATE seats SET is_booked=TRUE, booked_by=$1 WHERE id=$2`, userID, seatID); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		UserID:  userID,
		TrainNo: trainNo,
		SeatID:  seatID,
		SeatNo:  seatNo,
	}
	err = tx.QueryRow(ctx, `INSERT INTO bookings (user_id, train_no, seat_id) VALUES ($1, $2, $3) RETURNING id, created_at`, userID, trainNo, seatID).
		Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateBooking
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return booking, nil
}

// GetByIDForUser filters by owner in the query itself, so a booking that
// belongs to someone else looks exactly like a missing one.
func (r *PGBookingRepository) GetByIDForUser(ctx context.Context, id, userID int64) (*domain.BookingDetails, error) {
	row := r.db.QueryRow(ctx, `SELECT b.id, b.train_no, s.seat_no, t.source, t.destination, u.username, b.created_at
		FROM bookings b
		JOIN seats s ON s.id = b.seat_id
		JOIN trains t ON t.train_no = b.train_no
		JOIN users u ON u.id = b.user_id
		WHERE b.id=$1 AND b.user_id=$2`, id, userID)

	var d domain.BookingDetails
	if err := row.Scan(&d.BookingID, &d.TrainNo, &d.SeatNo, &d.Source, &d.Destination, &d.Username, &d.BookedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return &d, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ BookingRepository = (*PGBookingRepository)(nil)
