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

type serviceRepo struct {
	db *sqlx.DB
}

// NewServiceRepo creates a new PostgreSQL-backed ServiceRepository.
func NewServiceRepo(db *sqlx.DB) port.ServiceRepository {
	return &serviceRepo{db: db}
}

func (r *serviceRepo) Create(ctx context.Context, svc *domain.Service) error {
	svc.CreatedAt = time.Now().UTC()

	query := `INSERT INTO services
		(id, name, description, base_price, category, estimated_days, image_url,
		 is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		svc.ID, svc.Name, svc.Description, svc.BasePrice, svc.Category,
		svc.EstimatedDays, svc.ImageURL, svc.IsActive, svc.CreatedAt)
	if err != nil {
		return fmt.Errorf("serviceRepo.Create: %w", err)
	}
	return nil
}

func (r *serviceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	var svc domain.Service
	err := r.db.GetContext(ctx, &svc, "SELECT * FROM services WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("serviceRepo.GetByID: %w", err)
	}
	return &svc, nil
}

func (r *serviceRepo) List(ctx context.Context, activeOnly bool, offset, limit int) ([]domain.Service, int, error) {
	where := ""
	if activeOnly {
		where = "WHERE is_active"
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM services "+where); err != nil {
		return nil, 0, fmt.Errorf("serviceRepo.List count: %w", err)
	}

	var services []domain.Service
	err := r.db.SelectContext(ctx, &services,
		fmt.Sprintf("SELECT * FROM services %s ORDER BY name LIMIT $1 OFFSET $2", where),
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("serviceRepo.List: %w", err)
	}
	return services, total, nil
}

func (r *serviceRepo) Update(ctx context.Context, svc *domain.Service) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE services SET name = $1, description = $2, base_price = $3,
		 category = $4, estimated_days = $5, image_url = $6, is_active = $7
		 WHERE id = $8`,
		svc.Name, svc.Description, svc.BasePrice, svc.Category,
		svc.EstimatedDays, svc.ImageURL, svc.IsActive, svc.ID)
	if err != nil {
		return fmt.Errorf("serviceRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *serviceRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE services SET is_active = FALSE WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("serviceRepo.Deactivate: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
