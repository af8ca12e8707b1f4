package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/railbooking/internal/domain"
)

type TrainRepository interface {
	CreateWithSeats(ctx context.Context, train *domain.Train) error
	GetByNo(ctx context.Context, trainNo string) (*domain.Train, error)
	Search(ctx context.Context, source, destination string) ([]domain.Train, error)
	CountFreeSeats(ctx context.Context, trainNo string) (int, error)
}

type PGTrainRepository struct {
	db *pgxpool.Pool
}

func NewTrainRepository(db *pgxpool.Pool) TrainRepository {
	return &PGTrainRepository{db: db}
}

// CreateWithSeats inserts the train row and its full seat pool (numbered
// 1..total_seats) in one transaction. A train never exists without its
// seats, and seats are never created again for an existing train.
func (r *PGTrainRepository) CreateWithSeats(ctx context.Context, train *domain.Train) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `INSERT INTO trains (train_no, source, destination, total_seats) VALUES ($1, $2, $3, $4) RETURNING created_at`,
		train.TrainNo, train.Source, train.Destination, train.TotalSeats).Scan(&train.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrTrainExists
		}
		return err
	}

	if _, err := tx.Exec(ctx, `INSERT INTO seats (train_no, seat_no) SELECT $1, n FROM generate_series(1, $2::int) AS n`,
		train.TrainNo, train.TotalSeats); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGTrainRepository) GetByNo(ctx context.Context, trainNo string) (*domain.Train, error) {
	row := r.db.QueryRow(ctx, `SELECT train_no, source, destination, total_seats, created_at FROM trains WHERE train_no=$1`, trainNo)
	var t domain.Train
	if err := row.Scan(&t.TrainNo, &t.Source, &t.Destination, &t.TotalSeats, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTrainNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Search matches source and destination as case-insensitive substrings.
func (r *PGTrainRepository) Search(ctx context.Context, source, destination string) ([]domain.Train, error) {
	rows, err := r.db.Query(ctx, `SELECT train_no, source, destination, total_seats, created_at FROM trains
		WHERE source ILIKE '%' || $1 || '%' AND destination ILIKE '%' || $2 || '%'
		ORDER BY train_no`, source, destination)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trains := make([]domain.Train, 0)
	for rows.Next() {
		var t domain.Train
		if err := rows.Scan(&t.TrainNo, &t.Source, &t.Destination, &t.TotalSeats, &t.CreatedAt); err != nil {
			return nil, err
		}
		trains = append(trains, t)
	}
	return trains, rows.Err()
}

func (r *PGTrainRepository) CountFreeSeats(ctx context.Context, trainNo string) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM seats WHERE train_no=$1 AND NOT is_booked`, trainNo).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

var _ TrainRepository = (*PGTrainRepository)(nil)
