package service

import (
	"context"

	"github.com/clutchplay/platform/internal/domain"
	"github.com/clutchplay/platform/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReportsService serves the admin dashboard aggregates.
type ReportsService struct {
	pool    *pgxpool.Pool
	reports repository.ReportsRepository
}

// NewReportsService creates a new ReportsService.
func NewReportsService(pool *pgxpool.Pool, reports repository.ReportsRepository) *ReportsService {
	return &ReportsService{pool: pool, reports: reports}
}

// Dashboard returns the platform-wide aggregates.
func (s *ReportsService) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	stats, err := s.reports.Dashboard(ctx, s.pool)
	if err != nil {
		return nil, domain.ErrInternal("dashboard stats", err)
	}
	return stats, nil
}
