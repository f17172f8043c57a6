package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lynck-services/lead-api/internal/domain"
	"gorm.io/gorm"
)

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) Create(ctx context.Context, assignment *domain.LeadAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *AssignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.LeadAssignment, error) {
	var assignment domain.LeadAssignment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.LeadAssignment{}, "id = ?", id).Error
}

func (r *AssignmentRepository) ListByLead(ctx context.Context, leadID uuid.UUID) ([]domain.LeadAssignment, error) {
	var assignments []domain.LeadAssignment
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("lead_id = ?", leadID).
		Order("assigned_at DESC").
		Find(&assignments).Error
	return assignments, err
}

// SumAmountBetween totals amount_charged for assignments made in [from, to)
func (r *AssignmentRepository) SumAmountBetween(ctx context.Context, from, to time.Time) (float64, error) {
	var sum float64
	err := r.db.WithContext(ctx).
		Model(&domain.LeadAssignment{}).
		Where("assigned_at >= ? AND assigned_at < ?", from, to).
		Select("COALESCE(SUM(amount_charged), 0)").
		Scan(&sum).Error
	return sum, err
}
