package repository

import (
	"context"
	"fmt"

	"github.com/clutchplay/platform/internal/domain"
)

// ReportsRepository computes admin dashboard aggregates.
type ReportsRepository interface {
	Dashboard(ctx context.Context, db DBTX) (*domain.DashboardStats, error)
}

type reportsRepo struct{}

// NewReportsRepository returns a pgx-backed ReportsRepository.
func NewReportsRepository() ReportsRepository {
	return &reportsRepo{}
}

// Dashboard reads every aggregate in one round trip. The subselects are
// cheap at this data size; revisit with materialized counts if they stop being so.
func (r *reportsRepo) Dashboard(ctx context.Context, db DBTX) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	err := db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE banned),
			(SELECT COUNT(*) FROM tournaments),
			(SELECT COUNT(*) FROM tournaments WHERE status = 'upcoming'),
			(SELECT COUNT(*) FROM tournaments WHERE status = 'live'),
			(SELECT COUNT(*) FROM participants),
			(SELECT COUNT(*) FROM participants WHERE NOT approved),
			(SELECT COUNT(*) FROM redemptions WHERE status = 'pending'),
			(SELECT COALESCE(SUM(amount), 0) FROM redemptions WHERE status = 'pending'),
			(SELECT COALESCE(SUM(balance), 0) FROM users)`).Scan(
		&stats.TotalUsers,
		&stats.BannedUsers,
		&stats.TotalTournaments,
		&stats.UpcomingTournaments,
		&stats.LiveTournaments,
		&stats.TotalParticipants,
		&stats.PendingParticipants,
		&stats.PendingRedemptions,
		&stats.PendingRedeemAmount,
		&stats.TotalBalance,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &stats, nil
}
