package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a client or admin of the tailoring shop.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	Phone        string    `db:"phone" json:"phone"`
	Address      string    `db:"address" json:"address"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Service is a catalog entry for a tailoring service offered by the shop.
type Service struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Description   string    `db:"description" json:"description"`
	BasePrice     float64   `db:"base_price" json:"base_price"`
	Category      string    `db:"category" json:"category"`
	EstimatedDays int       `db:"estimated_days" json:"estimated_days"`
	ImageURL      string    `db:"image_url" json:"image_url"`
	IsActive      bool      `db:"is_active" json:"is_active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Order is a tailoring order placed by a client for a catalog service.
type Order struct {
	ID                  uuid.UUID     `db:"id" json:"id"`
	ClientID            uuid.UUID     `db:"client_id" json:"client_id"`
	ServiceID           uuid.UUID     `db:"service_id" json:"service_id"`
	Status              OrderStatus   `db:"status" json:"status"`
	Priority            OrderPriority `db:"priority" json:"priority"`
	Description         string        `db:"description" json:"description"`
	RequestedDate       time.Time     `db:"requested_date" json:"requested_date"`
	EstimatedCompletion time.Time     `db:"estimated_completion" json:"estimated_completion"`
	ActualCompletion    *time.Time    `db:"actual_completion" json:"actual_completion"`
	QuotedPrice         float64       `db:"quoted_price" json:"quoted_price"`
	ActualPrice         *float64      `db:"actual_price" json:"actual_price"`
	Notes               string        `db:"notes" json:"notes"`
	CreatedAt           time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time     `db:"updated_at" json:"updated_at"`
}

// OrderImage is the relational record of an image uploaded for an order.
//
// ObjectKey is the authoritative reference into object storage: it is set only
// after the uploaded bytes have been verified present in the active backend,
// and is never regenerated for an existing record. DownloadURL is a derived,
// time-limited cache that can be refreshed at any time without touching the
// stored bytes.
type OrderImage struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	OrderID     uuid.UUID     `db:"order_id" json:"order_id"`
	UploadedBy  uuid.UUID     `db:"uploaded_by" json:"uploaded_by"`
	ObjectKey   string        `db:"object_key" json:"object_key"`
	DownloadURL string        `db:"download_url" json:"download_url"`
	Category    ImageCategory `db:"category" json:"category"`
	UploadedAt  time.Time     `db:"uploaded_at" json:"uploaded_at"`
}

// Booking is a fitting appointment for a catalog service.
type Booking struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	UserID      uuid.UUID     `db:"user_id" json:"user_id"`
	ServiceID   uuid.UUID     `db:"service_id" json:"service_id"`
	Status      BookingStatus `db:"status" json:"status"`
	ScheduledAt time.Time     `db:"scheduled_at" json:"scheduled_at"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
}
