package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"sartor/internal/domain"
	"sartor/internal/port"
)

// ServiceInput is the DTO for creating or updating a catalog entry.
type ServiceInput struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	BasePrice     float64 `json:"base_price" binding:"required,gt=0"`
	Category      string  `json:"category" binding:"required"`
	EstimatedDays int     `json:"estimated_days" binding:"required,gt=0"`
	ImageURL      string  `json:"image_url"`
	IsActive      *bool   `json:"is_active"`
}

// CatalogService manages the tailoring service catalog.
type CatalogService interface {
	Create(ctx context.Context, input ServiceInput) (*domain.Service, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	List(ctx context.Context, activeOnly bool, offset, limit int) ([]domain.Service, int, error)
	Update(ctx context.Context, id uuid.UUID, input ServiceInput) (*domain.Service, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	serviceRepo port.ServiceRepository
}

// NewCatalogService creates a new CatalogService implementation.
func NewCatalogService(serviceRepo port.ServiceRepository) CatalogService {
	return &catalogService{serviceRepo: serviceRepo}
}

func (s *catalogService) Create(ctx context.Context, input ServiceInput) (*domain.Service, error) {
	svc := &domain.Service{
		ID:            uuid.New(),
		Name:          input.Name,
		Description:   input.Description,
		BasePrice:     input.BasePrice,
		Category:      input.Category,
		EstimatedDays: input.EstimatedDays,
		ImageURL:      input.ImageURL,
		IsActive:      true,
	}
	if input.IsActive != nil {
		svc.IsActive = *input.IsActive
	}
	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("catalogService.Create: %w", err)
	}
	return svc, nil
}

func (s *catalogService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("catalogService.GetByID: %w", err)
	}
	return svc, nil
}

func (s *catalogService) List(ctx context.Context, activeOnly bool, offset, limit int) ([]domain.Service, int, error) {
	services, total, err := s.serviceRepo.List(ctx, activeOnly, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("catalogService.List: %w", err)
	}
	return services, total, nil
}

func (s *catalogService) Update(ctx context.Context, id uuid.UUID, input ServiceInput) (*domain.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("catalogService.Update: %w", err)
	}

	svc.Name = input.Name
	svc.Description = input.Description
	svc.BasePrice = input.BasePrice
	svc.Category = input.Category
	svc.EstimatedDays = input.EstimatedDays
	svc.ImageURL = input.ImageURL
	if input.IsActive != nil {
		svc.IsActive = *input.IsActive
	}

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("catalogService.Update: %w", err)
	}
	return svc, nil
}

func (s *catalogService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.serviceRepo.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("catalogService.Deactivate: %w", err)
	}
	return nil
}
