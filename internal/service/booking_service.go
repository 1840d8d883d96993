package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"sartor/internal/domain"
	"sartor/internal/port"
)

// CreateBookingInput is the DTO for scheduling a fitting appointment.
type CreateBookingInput struct {
	ServiceID   uuid.UUID `json:"service_id" binding:"required"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

// UpdateBookingStatusInput is the DTO for booking status transitions.
type UpdateBookingStatusInput struct {
	Status domain.BookingStatus `json:"status" binding:"required"`
}

// BookingService manages fitting appointments.
type BookingService interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateBookingInput) (*domain.Booking, error)
	GetByID(ctx context.Context, callerID uuid.UUID, callerRole domain.UserRole, id uuid.UUID) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Booking, int, error)
	UpdateStatus(ctx context.Context, callerID uuid.UUID, callerRole domain.UserRole, id uuid.UUID, status domain.BookingStatus) (*domain.Booking, error)
}

type bookingService struct {
	bookingRepo port.BookingRepository
	serviceRepo port.ServiceRepository
	userRepo    port.UserRepository
	email       port.EmailSender
}

// NewBookingService creates a new BookingService implementation.
func NewBookingService(
	bookingRepo port.BookingRepository,
	serviceRepo port.ServiceRepository,
	userRepo port.UserRepository,
	email port.EmailSender,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		serviceRepo: serviceRepo,
		userRepo:    userRepo,
		email:       email,
	}
}

func (s *bookingService) Create(ctx context.Context, userID uuid.UUID, input CreateBookingInput) (*domain.Booking, error) {
	svc, err := s.serviceRepo.GetByID(ctx, input.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("bookingService.Create: %w", err)
	}
	if !svc.IsActive {
		return nil, domain.ErrNotFound
	}

	booking := &domain.Booking{
		ID:          uuid.New(),
		UserID:      userID,
		ServiceID:   svc.ID,
		Status:      domain.BookingStatusPending,
		ScheduledAt: input.ScheduledAt,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("bookingService.Create: %w", err)
	}

	// Confirmation failures never roll back the booking.
	if user, err := s.userRepo.GetByID(ctx, userID); err != nil {
		log.Printf("bookingService.Create: loading user %s for confirmation: %v", userID, err)
	} else if err := s.email.SendBookingConfirmation(ctx, user.Email, user.FirstName, booking); err != nil {
		log.Printf("bookingService.Create: confirmation email to %s: %v", user.Email, err)
	}

	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, callerID uuid.UUID, callerRole domain.UserRole, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("bookingService.GetByID: %w", err)
	}
	if callerRole != domain.RoleAdmin && booking.UserID != callerID {
		return nil, domain.ErrForbidden
	}
	return booking, nil
}

func (s *bookingService) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Booking, int, error) {
	bookings, total, err := s.bookingRepo.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("bookingService.ListByUser: %w", err)
	}
	return bookings, total, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, callerID uuid.UUID, callerRole domain.UserRole, id uuid.UUID, status domain.BookingStatus) (*domain.Booking, error) {
	switch status {
	case domain.BookingStatusPending, domain.BookingStatusConfirmed, domain.BookingStatusCancelled:
	default:
		return nil, domain.ErrInvalidStatus
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("bookingService.UpdateStatus: %w", err)
	}

	// Clients may only cancel their own bookings; everything else is admin.
	if callerRole != domain.RoleAdmin {
		if booking.UserID != callerID || status != domain.BookingStatusCancelled {
			return nil, domain.ErrForbidden
		}
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("bookingService.UpdateStatus: %w", err)
	}
	booking.Status = status
	return booking, nil
}
