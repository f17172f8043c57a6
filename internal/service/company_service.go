package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/lynck-services/lead-api/internal/domain"
	"github.com/lynck-services/lead-api/internal/mapper"
	"github.com/lynck-services/lead-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompanyService struct {
	companyRepo *repository.CompanyRepository
	serviceRepo *repository.ServiceRepository
	logger      *zap.Logger
}

func NewCompanyService(
	companyRepo *repository.CompanyRepository,
	serviceRepo *repository.ServiceRepository,
	logger *zap.Logger,
) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

func (s *CompanyService) Create(ctx context.Context, req *domain.CreateCompanyRequest) (*domain.CompanyDTO, error) {
	if err := s.checkServiceIDs(ctx, req.ServiceIDs); err != nil {
		return nil, err
	}

	company := &domain.Company{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Whatsapp:      req.Whatsapp,
		ServiceIDs:    pq.StringArray(req.ServiceIDs),
		Cities:        pq.StringArray(req.Cities),
		IsActive:      true,
	}
	if req.IsActive != nil {
		company.IsActive = *req.IsActive
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	s.logger.Info("company created",
		zap.String("company_id", company.ID.String()),
		zap.String("name", company.Name),
	)

	dto := mapper.ToCompanyDTO(company)
	return &dto, nil
}

func (s *CompanyService) GetByID(ctx context.Context, id uuid.UUID) (*domain.CompanyDTO, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	dto := mapper.ToCompanyDTO(company)
	return &dto, nil
}

func (s *CompanyService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateCompanyRequest) (*domain.CompanyDTO, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	if err := s.checkServiceIDs(ctx, req.ServiceIDs); err != nil {
		return nil, err
	}

	company.Name = req.Name
	company.ContactPerson = req.ContactPerson
	company.Email = req.Email
	company.Phone = req.Phone
	company.Whatsapp = req.Whatsapp
	company.ServiceIDs = pq.StringArray(req.ServiceIDs)
	company.Cities = pq.StringArray(req.Cities)
	if req.IsActive != nil {
		company.IsActive = *req.IsActive
	}

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to update company: %w", err)
	}

	dto := mapper.ToCompanyDTO(company)
	return &dto, nil
}

// Delete removes the company entirely. Existing assignments keep their
// company_id, so history survives even a hard delete.
func (s *CompanyService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.companyRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCompanyNotFound
		}
		return fmt.Errorf("failed to get company: %w", err)
	}

	if err := s.companyRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}

	return nil
}

func (s *CompanyService) List(ctx context.Context, page, pageSize int, search string, isActive *bool) (*domain.PaginatedResponse, error) {
	// Clamp page size
	if pageSize < 1 {
		pageSize = 25
	}
	if pageSize > 200 {
		pageSize = 200
	}
	if page < 1 {
		page = 1
	}

	companies, total, err := s.companyRepo.List(ctx, page, pageSize, search, isActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	dtos := make([]domain.CompanyDTO, len(companies))
	for i, company := range companies {
		dtos[i] = mapper.ToCompanyDTO(&company)
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// checkServiceIDs verifies every referenced service exists. Inactive
// services are allowed; companies keep serving them.
func (s *CompanyService) checkServiceIDs(ctx context.Context, ids []string) error {
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return ErrServiceNotFound
		}
		if _, err := s.serviceRepo.GetByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrServiceNotFound
			}
			return fmt.Errorf("failed to look up service: %w", err)
		}
	}
	return nil
}
