package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/lynck-services/lead-api/internal/domain"
	"github.com/lynck-services/lead-api/internal/mapper"
	"github.com/lynck-services/lead-api/internal/notify"
	"github.com/lynck-services/lead-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// German phone numbers only, after spaces are stripped
var phonePattern = regexp.MustCompile(`^(\+49|0)[0-9]{9,14}$`)

type LeadService struct {
	leadRepo       *repository.LeadRepository
	serviceRepo    *repository.ServiceRepository
	cityRepo       *repository.CityRepository
	assignmentRepo *repository.AssignmentRepository
	webhook        *notify.WebhookClient
	logger         *zap.Logger
}

func NewLeadService(
	leadRepo *repository.LeadRepository,
	serviceRepo *repository.ServiceRepository,
	cityRepo *repository.CityRepository,
	assignmentRepo *repository.AssignmentRepository,
	webhook *notify.WebhookClient,
	logger *zap.Logger,
) *LeadService {
	return &LeadService{
		leadRepo:       leadRepo,
		serviceRepo:    serviceRepo,
		cityRepo:       cityRepo,
		assignmentRepo: assignmentRepo,
		webhook:        webhook,
		logger:         logger,
	}
}

// Create handles public lead intake. Struct tags cover shape and lengths;
// the checks here need other tables or normalization: phone format after
// stripping spaces, city must be in the service area, service must exist.
func (s *LeadService) Create(ctx context.Context, req *domain.CreateLeadRequest) (*domain.LeadCreatedResponse, error) {
	phone := strings.ReplaceAll(req.Phone, " ", "")
	if !phonePattern.MatchString(phone) {
		return nil, ErrInvalidPhone
	}

	if _, err := s.cityRepo.GetActiveByName(ctx, req.City); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownCity
		}
		return nil, fmt.Errorf("failed to look up city: %w", err)
	}

	var serviceID *uuid.UUID
	if req.ServiceID != nil && *req.ServiceID != "" {
		id, err := uuid.Parse(*req.ServiceID)
		if err != nil {
			return nil, ErrServiceNotFound
		}
		if _, err := s.serviceRepo.GetByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrServiceNotFound
			}
			return nil, fmt.Errorf("failed to look up service: %w", err)
		}
		serviceID = &id
	}

	var email *string
	if req.Email != "" {
		email = &req.Email
	}

	lead := &domain.Lead{
		Name:           req.Name,
		Phone:          phone,
		Email:          email,
		City:           req.City,
		PLZ:            req.PLZ,
		ServiceID:      serviceID,
		ServiceDetails: req.ServiceDetails,
		Timeline:       req.Timeline,
		Status:         domain.LeadStatusNew,
		Source:         domain.LeadSourceWebsite,
	}

	if err := s.leadRepo.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	s.logger.Info("lead created",
		zap.String("lead_id", lead.ID.String()),
		zap.String("city", lead.City),
	)

	// Best-effort notification; the lead is already stored
	if err := s.webhook.LeadCreated(ctx, lead); err != nil {
		s.logger.Warn("lead webhook delivery failed",
			zap.String("lead_id", lead.ID.String()),
			zap.Error(err),
		)
	}

	return &domain.LeadCreatedResponse{Success: true, LeadID: lead.ID}, nil
}

// GetConfirmation returns the public thank-you payload for a fresh lead
func (s *LeadService) GetConfirmation(ctx context.Context, id uuid.UUID) (*domain.LeadConfirmationDTO, error) {
	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	dto := mapper.ToLeadConfirmationDTO(lead)
	return &dto, nil
}

func (s *LeadService) GetByID(ctx context.Context, id uuid.UUID) (*domain.LeadWithDetailsDTO, error) {
	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	assignments, err := s.assignmentRepo.ListByLead(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	assignmentDTOs := make([]domain.LeadAssignmentDTO, len(assignments))
	for i, assignment := range assignments {
		assignmentDTOs[i] = mapper.ToLeadAssignmentDTO(&assignment)
	}

	return &domain.LeadWithDetailsDTO{
		LeadDTO:     mapper.ToLeadDTO(lead),
		Assignments: assignmentDTOs,
	}, nil
}

func (s *LeadService) List(ctx context.Context, page, pageSize int, filter repository.LeadFilter) (*domain.PaginatedResponse, error) {
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

	leads, total, err := s.leadRepo.List(ctx, page, pageSize, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}

	dtos := make([]domain.LeadDTO, len(leads))
	for i, lead := range leads {
		dtos[i] = mapper.ToLeadDTO(&lead)
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

// UpdateStatus moves a lead to any of the known statuses. Transitions are
// unrestricted; converted leads can go back to contacted.
func (s *LeadService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.LeadStatus) error {
	if !status.IsValid() {
		return ErrInvalidInput
	}

	if err := s.leadRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLeadNotFound
		}
		return fmt.Errorf("failed to update lead status: %w", err)
	}

	return nil
}

// UpdateNotes replaces the admin notes; an empty string clears them
func (s *LeadService) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error {
	var value *string
	if notes != "" {
		value = &notes
	}

	if err := s.leadRepo.UpdateNotes(ctx, id, value); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLeadNotFound
		}
		return fmt.Errorf("failed to update lead notes: %w", err)
	}

	return nil
}

func (s *LeadService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.leadRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLeadNotFound
		}
		return fmt.Errorf("failed to get lead: %w", err)
	}

	if err := s.leadRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}

	return nil
}

// BulkUpdateStatus updates all given leads in a single statement and
// returns how many rows actually changed
func (s *LeadService) BulkUpdateStatus(ctx context.Context, req *domain.BulkLeadStatusRequest) (int64, error) {
	if !req.Status.IsValid() {
		return 0, ErrInvalidInput
	}

	updated, err := s.leadRepo.BulkUpdateStatus(ctx, req.LeadIDs, req.Status)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk update lead status: %w", err)
	}

	s.logger.Info("bulk lead status update",
		zap.Int("requested", len(req.LeadIDs)),
		zap.Int64("updated", updated),
		zap.String("status", string(req.Status)),
	)

	return updated, nil
}
