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

type orderRepo struct {
	db *sqlx.DB
}

// NewOrderRepo creates a new PostgreSQL-backed OrderRepository.
func NewOrderRepo(db *sqlx.DB) port.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Create(ctx context.Context, order *domain.Order) error {
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now

	query := `INSERT INTO orders
		(id, client_id, service_id, status, priority, description, requested_date,
		 estimated_completion, actual_completion, quoted_price, actual_price, notes,
		 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.ExecContext(ctx, query,
		order.ID, order.ClientID, order.ServiceID, order.Status, order.Priority,
		order.Description, order.RequestedDate, order.EstimatedCompletion,
		order.ActualCompletion, order.QuotedPrice, order.ActualPrice, order.Notes,
		order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("orderRepo.Create: %w", err)
	}
	return nil
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	var order domain.Order
	err := r.db.GetContext(ctx, &order, "SELECT * FROM orders WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("orderRepo.GetByID: %w", err)
	}
	return &order, nil
}

func (r *orderRepo) ListByClient(ctx context.Context, clientID uuid.UUID, offset, limit int) ([]domain.Order, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM orders WHERE client_id = $1", clientID)
	if err != nil {
		return nil, 0, fmt.Errorf("orderRepo.ListByClient count: %w", err)
	}

	var orders []domain.Order
	err = r.db.SelectContext(ctx, &orders,
		`SELECT * FROM orders WHERE client_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		clientID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("orderRepo.ListByClient: %w", err)
	}
	return orders, total, nil
}

func (r *orderRepo) List(ctx context.Context, offset, limit int) ([]domain.Order, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM orders"); err != nil {
		return nil, 0, fmt.Errorf("orderRepo.List count: %w", err)
	}

	var orders []domain.Order
	err := r.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("orderRepo.List: %w", err)
	}
	return orders, total, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	query := "UPDATE orders SET status = $1, updated_at = $2"
	args := []interface{}{status, time.Now().UTC()}

	// Completion timestamps follow the status transition.
	if status == domain.OrderStatusCompleted {
		query += ", actual_completion = $3 WHERE id = $4"
		args = append(args, time.Now().UTC(), id)
	} else {
		query += " WHERE id = $3"
		args = append(args, id)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("orderRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
