package port

import (
	"context"

	"github.com/google/uuid"

	"sartor/internal/domain"
)

// UserRepository persists users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, user *domain.User) error
}

// ServiceRepository persists the tailoring service catalog.
type ServiceRepository interface {
	Create(ctx context.Context, svc *domain.Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	List(ctx context.Context, activeOnly bool, offset, limit int) ([]domain.Service, int, error)
	Update(ctx context.Context, svc *domain.Service) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// OrderRepository persists tailoring orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListByClient(ctx context.Context, clientID uuid.UUID, offset, limit int) ([]domain.Order, int, error)
	List(ctx context.Context, offset, limit int) ([]domain.Order, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
}

// OrderImageRepository persists order image records. Rows are created only by
// the image upload workflow after the stored bytes have been verified.
type OrderImageRepository interface {
	Create(ctx context.Context, img *domain.OrderImage) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.OrderImage, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.OrderImage, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BookingRepository persists fitting appointments.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Booking, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error
}
