package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lynck-services/lead-api/internal/domain"
	"github.com/lynck-services/lead-api/internal/mapper"
	"github.com/lynck-services/lead-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CatalogService serves the public service/city catalog and its admin
// management operations. Services are never hard-deleted; cities neither.
type CatalogService struct {
	serviceRepo *repository.ServiceRepository
	cityRepo    *repository.CityRepository
	logger      *zap.Logger
}

func NewCatalogService(
	serviceRepo *repository.ServiceRepository,
	cityRepo *repository.CityRepository,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		serviceRepo: serviceRepo,
		cityRepo:    cityRepo,
		logger:      logger,
	}
}

func (s *CatalogService) ListActiveServices(ctx context.Context) ([]domain.ServiceDTO, error) {
	services, err := s.serviceRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	dtos := make([]domain.ServiceDTO, len(services))
	for i, service := range services {
		dtos[i] = mapper.ToServiceDTO(&service)
	}
	return dtos, nil
}

func (s *CatalogService) GetServiceBySlug(ctx context.Context, slug string) (*domain.ServiceDTO, error) {
	service, err := s.serviceRepo.GetActiveBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	dto := mapper.ToServiceDTO(service)
	return &dto, nil
}

func (s *CatalogService) ListAllServices(ctx context.Context) ([]domain.ServiceDTO, error) {
	services, err := s.serviceRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	dtos := make([]domain.ServiceDTO, len(services))
	for i, service := range services {
		dtos[i] = mapper.ToServiceDTO(&service)
	}
	return dtos, nil
}

// UpdateService edits a service's content and price. The slug is the public
// URL and stays fixed.
func (s *CatalogService) UpdateService(ctx context.Context, id uuid.UUID, req *domain.UpdateServiceRequest) (*domain.ServiceDTO, error) {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	service.Name = req.Name
	service.NameEN = req.NameEN
	service.Description = req.Description
	service.DescriptionEN = req.DescriptionEN
	service.Icon = req.Icon
	service.LeadPrice = req.LeadPrice

	if err := s.serviceRepo.Update(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}

	dto := mapper.ToServiceDTO(service)
	return &dto, nil
}

func (s *CatalogService) SetServiceActive(ctx context.Context, id uuid.UUID, active bool) error {
	if err := s.serviceRepo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrServiceNotFound
		}
		return fmt.Errorf("failed to toggle service: %w", err)
	}

	s.logger.Info("service active flag changed",
		zap.String("service_id", id.String()),
		zap.Bool("is_active", active),
	)
	return nil
}

func (s *CatalogService) ListActiveCities(ctx context.Context) ([]domain.CityDTO, error) {
	cities, err := s.cityRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}

	dtos := make([]domain.CityDTO, len(cities))
	for i, city := range cities {
		dtos[i] = mapper.ToCityDTO(&city)
	}
	return dtos, nil
}

func (s *CatalogService) ListAllCities(ctx context.Context) ([]domain.CityDTO, error) {
	cities, err := s.cityRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}

	dtos := make([]domain.CityDTO, len(cities))
	for i, city := range cities {
		dtos[i] = mapper.ToCityDTO(&city)
	}
	return dtos, nil
}

func (s *CatalogService) CreateCity(ctx context.Context, req *domain.CreateCityRequest) (*domain.CityDTO, error) {
	city := &domain.City{
		Name:     strings.TrimSpace(req.Name),
		IsActive: true,
	}

	if err := s.cityRepo.Create(ctx, city); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create city: %w", err)
	}

	dto := mapper.ToCityDTO(city)
	return &dto, nil
}

func (s *CatalogService) SetCityActive(ctx context.Context, id uuid.UUID, active bool) error {
	if err := s.cityRepo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to toggle city: %w", err)
	}

	s.logger.Info("city active flag changed",
		zap.String("city_id", id.String()),
		zap.Bool("is_active", active),
	)
	return nil
}
