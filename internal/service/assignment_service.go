package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lynck-services/lead-api/internal/domain"
	"github.com/lynck-services/lead-api/internal/mapper"
	"github.com/lynck-services/lead-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AssignmentService struct {
	assignmentRepo *repository.AssignmentRepository
	leadRepo       *repository.LeadRepository
	companyRepo    *repository.CompanyRepository
	logger         *zap.Logger
}

func NewAssignmentService(
	assignmentRepo *repository.AssignmentRepository,
	leadRepo *repository.LeadRepository,
	companyRepo *repository.CompanyRepository,
	logger *zap.Logger,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		leadRepo:       leadRepo,
		companyRepo:    companyRepo,
		logger:         logger,
	}
}

// FindMatches returns active companies that cover the lead's service and
// city. A lead without a service matches nothing; that is an empty result,
// not an error.
func (s *AssignmentService) FindMatches(ctx context.Context, leadID uuid.UUID) ([]domain.CompanyDTO, error) {
	lead, err := s.leadRepo.GetByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	if lead.ServiceID == nil {
		return []domain.CompanyDTO{}, nil
	}

	companies, err := s.companyRepo.FindMatching(ctx, *lead.ServiceID, lead.City)
	if err != nil {
		return nil, fmt.Errorf("failed to find matching companies: %w", err)
	}

	dtos := make([]domain.CompanyDTO, len(companies))
	for i, company := range companies {
		dtos[i] = mapper.ToCompanyDTO(&company)
	}
	return dtos, nil
}

// Assign sells the lead to each company, snapshotting the price at
// assignment time. Each insert stands alone: one company failing does not
// roll back the others, the caller gets a result per company. The lead's
// status is left untouched.
func (s *AssignmentService) Assign(ctx context.Context, leadID uuid.UUID, req *domain.AssignLeadRequest, assignedBy string) ([]domain.AssignmentResultDTO, error) {
	lead, err := s.leadRepo.GetByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	amount := domain.DefaultLeadPrice
	if lead.Service != nil && lead.Service.LeadPrice > 0 {
		amount = lead.Service.LeadPrice
	}

	results := make([]domain.AssignmentResultDTO, 0, len(req.CompanyIDs))
	for _, companyID := range dedupe(req.CompanyIDs) {
		result := domain.AssignmentResultDTO{CompanyID: companyID}

		if _, err := s.companyRepo.GetByID(ctx, companyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result.Error = ErrCompanyNotFound.Error()
			} else {
				result.Error = "failed to look up company"
			}
			results = append(results, result)
			continue
		}

		assignment := &domain.LeadAssignment{
			LeadID:        leadID,
			CompanyID:     companyID,
			AssignedBy:    assignedBy,
			AmountCharged: amount,
		}
		if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
			s.logger.Error("failed to create assignment",
				zap.String("lead_id", leadID.String()),
				zap.String("company_id", companyID.String()),
				zap.Error(err),
			)
			result.Error = "failed to create assignment"
			results = append(results, result)
			continue
		}

		result.Success = true
		result.AssignmentID = &assignment.ID
		result.AmountCharged = amount
		results = append(results, result)
	}

	return results, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (s *AssignmentService) ListByLead(ctx context.Context, leadID uuid.UUID) ([]domain.LeadAssignmentDTO, error) {
	if _, err := s.leadRepo.GetByID(ctx, leadID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	assignments, err := s.assignmentRepo.ListByLead(ctx, leadID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	dtos := make([]domain.LeadAssignmentDTO, len(assignments))
	for i, assignment := range assignments {
		dtos[i] = mapper.ToLeadAssignmentDTO(&assignment)
	}
	return dtos, nil
}

// Delete un-assigns a lead from a company
func (s *AssignmentService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.assignmentRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get assignment: %w", err)
	}

	if err := s.assignmentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}

	return nil
}
