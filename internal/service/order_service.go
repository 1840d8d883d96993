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

// CreateOrderInput is the DTO for placing a tailoring order.
type CreateOrderInput struct {
	ServiceID     uuid.UUID            `json:"service_id" binding:"required"`
	Priority      domain.OrderPriority `json:"priority"`
	Description   string               `json:"description" binding:"required"`
	RequestedDate time.Time            `json:"requested_date" binding:"required"`
	Notes         string               `json:"notes"`
}

// UpdateOrderStatusInput is the DTO for order status transitions.
type UpdateOrderStatusInput struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

// OrderService manages tailoring orders.
type OrderService interface {
	Create(ctx context.Context, clientID uuid.UUID, input CreateOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, callerID uuid.UUID, callerRole domain.UserRole, id uuid.UUID) (*domain.Order, error)
	ListByClient(ctx context.Context, clientID uuid.UUID, offset, limit int) ([]domain.Order, int, error)
	List(ctx context.Context, offset, limit int) ([]domain.Order, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error)
}

type orderService struct {
	orderRepo   port.OrderRepository
	serviceRepo port.ServiceRepository
	userRepo    port.UserRepository
	email       port.EmailSender
}

// NewOrderService creates a new OrderService implementation.
func NewOrderService(
	orderRepo port.OrderRepository,
	serviceRepo port.ServiceRepository,
	userRepo port.UserRepository,
	email port.EmailSender,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		serviceRepo: serviceRepo,
		userRepo:    userRepo,
		email:       email,
	}
}

func (s *orderService) Create(ctx context.Context, clientID uuid.UUID, input CreateOrderInput) (*domain.Order, error) {
	svc, err := s.serviceRepo.GetByID(ctx, input.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("orderService.Create: %w", err)
	}
	if !svc.IsActive {
		return nil, domain.ErrNotFound
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityNormal
	}
	if !domain.ValidOrderPriorities[priority] {
		return nil, domain.ErrInvalidStatus
	}

	order := &domain.Order{
		ID:                  uuid.New(),
		ClientID:            clientID,
		ServiceID:           svc.ID,
		Status:              domain.OrderStatusPending,
		Priority:            priority,
		Description:         input.Description,
		RequestedDate:       input.RequestedDate,
		EstimatedCompletion: input.RequestedDate.AddDate(0, 0, svc.EstimatedDays),
		QuotedPrice:         svc.BasePrice,
		Notes:               input.Notes,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("orderService.Create: %w", err)
	}
	return order, nil
}

func (s *orderService) GetByID(ctx context.Context, callerID uuid.UUID, callerRole domain.UserRole, id uuid.UUID) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("orderService.GetByID: %w", err)
	}
	// Clients only see their own orders.
	if callerRole != domain.RoleAdmin && order.ClientID != callerID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

func (s *orderService) ListByClient(ctx context.Context, clientID uuid.UUID, offset, limit int) ([]domain.Order, int, error) {
	orders, total, err := s.orderRepo.ListByClient(ctx, clientID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("orderService.ListByClient: %w", err)
	}
	return orders, total, nil
}

func (s *orderService) List(ctx context.Context, offset, limit int) ([]domain.Order, int, error) {
	orders, total, err := s.orderRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("orderService.List: %w", err)
	}
	return orders, total, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	if !domain.ValidOrderStatuses[status] {
		return nil, domain.ErrInvalidStatus
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("orderService.UpdateStatus: %w", err)
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("orderService.UpdateStatus: %w", err)
	}

	// Notification failures never roll back the transition.
	if status == domain.OrderStatusReady {
		if client, err := s.userRepo.GetByID(ctx, order.ClientID); err != nil {
			log.Printf("orderService.UpdateStatus: loading client %s for notification: %v", order.ClientID, err)
		} else if err := s.email.SendOrderReady(ctx, client.Email, client.FirstName, order); err != nil {
			log.Printf("orderService.UpdateStatus: order ready email to %s: %v", client.Email, err)
		}
	}

	return order, nil
}
