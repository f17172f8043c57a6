package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lynck-services/lead-api/internal/domain"
	"github.com/lynck-services/lead-api/internal/repository"
	"go.uber.org/zap"
)

type DashboardService struct {
	leadRepo       *repository.LeadRepository
	companyRepo    *repository.CompanyRepository
	assignmentRepo *repository.AssignmentRepository
	logger         *zap.Logger
}

func NewDashboardService(
	leadRepo *repository.LeadRepository,
	companyRepo *repository.CompanyRepository,
	assignmentRepo *repository.AssignmentRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		leadRepo:       leadRepo,
		companyRepo:    companyRepo,
		assignmentRepo: assignmentRepo,
		logger:         logger,
	}
}

// Stats computes the admin dashboard counters. Weeks start on Monday and
// all boundaries are UTC, matching how timestamps are stored.
func (s *DashboardService) Stats(ctx context.Context) (*domain.DashboardStatsDTO, error) {
	return s.StatsAt(ctx, time.Now().UTC())
}

// StatsAt computes the counters relative to the given instant
func (s *DashboardService) StatsAt(ctx context.Context, now time.Time) (*domain.DashboardStatsDTO, error) {
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	tomorrowStart := todayStart.AddDate(0, 0, 1)
	yesterdayStart := todayStart.AddDate(0, 0, -1)

	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	weekStart := todayStart.AddDate(0, 0, -(weekday - 1))
	lastWeekStart := weekStart.AddDate(0, 0, -7)

	stats := &domain.DashboardStatsDTO{}
	var err error

	if stats.LeadsToday, err = s.leadRepo.CountCreatedBetween(ctx, todayStart, tomorrowStart); err != nil {
		return nil, fmt.Errorf("failed to count leads today: %w", err)
	}
	if stats.LeadsYesterday, err = s.leadRepo.CountCreatedBetween(ctx, yesterdayStart, todayStart); err != nil {
		return nil, fmt.Errorf("failed to count leads yesterday: %w", err)
	}
	if stats.LeadsThisWeek, err = s.leadRepo.CountCreatedBetween(ctx, weekStart, tomorrowStart); err != nil {
		return nil, fmt.Errorf("failed to count leads this week: %w", err)
	}
	if stats.LeadsLastWeek, err = s.leadRepo.CountCreatedBetween(ctx, lastWeekStart, weekStart); err != nil {
		return nil, fmt.Errorf("failed to count leads last week: %w", err)
	}
	if stats.ActiveCompanies, err = s.companyRepo.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("failed to count active companies: %w", err)
	}
	if stats.RevenueThisWeek, err = s.assignmentRepo.SumAmountBetween(ctx, weekStart, tomorrowStart); err != nil {
		return nil, fmt.Errorf("failed to sum revenue this week: %w", err)
	}
	if stats.RevenueLastWeek, err = s.assignmentRepo.SumAmountBetween(ctx, lastWeekStart, weekStart); err != nil {
		return nil, fmt.Errorf("failed to sum revenue last week: %w", err)
	}

	return stats, nil
}
