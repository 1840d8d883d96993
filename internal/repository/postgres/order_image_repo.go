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

type orderImageRepo struct {
	db *sqlx.DB
}

// NewOrderImageRepo creates a new PostgreSQL-backed OrderImageRepository.
func NewOrderImageRepo(db *sqlx.DB) port.OrderImageRepository {
	return &orderImageRepo{db: db}
}

func (r *orderImageRepo) Create(ctx context.Context, img *domain.OrderImage) error {
	img.UploadedAt = time.Now().UTC()

	query := `INSERT INTO order_images
		(id, order_id, uploaded_by, object_key, download_url, category, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		img.ID, img.OrderID, img.UploadedBy, img.ObjectKey, img.DownloadURL,
		img.Category, img.UploadedAt)
	if err != nil {
		return fmt.Errorf("orderImageRepo.Create: %w", err)
	}
	return nil
}

func (r *orderImageRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.OrderImage, error) {
	var img domain.OrderImage
	err := r.db.GetContext(ctx, &img,
		"SELECT * FROM order_images WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("orderImageRepo.GetByID: %w", err)
	}
	return &img, nil
}

func (r *orderImageRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.OrderImage, error) {
	var images []domain.OrderImage
	err := r.db.SelectContext(ctx, &images,
		"SELECT * FROM order_images WHERE order_id = $1 ORDER BY uploaded_at DESC", orderID)
	if err != nil {
		return nil, fmt.Errorf("orderImageRepo.ListByOrder: %w", err)
	}
	return images, nil
}

func (r *orderImageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM order_images WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("orderImageRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
