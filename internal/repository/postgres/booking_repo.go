package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"sartor/internal/domain"
	"sartor/internal/port"
)

type bookingRepo struct {
	db *sqlx.DB
}

// NewBookingRepo creates a new PostgreSQL-backed BookingRepository.
func NewBookingRepo(db *sqlx.DB) port.BookingRepository {
	return &bookingRepo{db: db}
}

func (r *bookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	booking.CreatedAt = time.Now().UTC()

	query := `INSERT INTO bookings
		(id, user_id, service_id, status, scheduled_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		booking.ID, booking.UserID, booking.ServiceID, booking.Status,
		booking.ScheduledAt, booking.CreatedAt)
	if err != nil {
		return fmt.Errorf("bookingRepo.Create: %w", err)
	}
	return nil
}

func (r *bookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var booking domain.Booking
	err := r.db.GetContext(ctx, &booking, "SELECT * FROM bookings WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("bookingRepo.GetByID: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Booking, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM bookings WHERE user_id = $1", userID)
	if err != nil {
		return nil, 0, fmt.Errorf("bookingRepo.ListByUser count: %w", err)
	}

	var bookings []domain.Booking
	err = r.db.SelectContext(ctx, &bookings,
		`SELECT * FROM bookings WHERE user_id = $1
		 ORDER BY scheduled_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("bookingRepo.ListByUser: %w", err)
	}
	return bookings, total, nil
}

func (r *bookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE bookings SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return fmt.Errorf("bookingRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
