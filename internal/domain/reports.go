package domain

// DashboardStats is the admin overview aggregate.
type DashboardStats struct {
	TotalUsers          int64 `json:"total_users"`
	BannedUsers         int64 `json:"banned_users"`
	TotalTournaments    int64 `json:"total_tournaments"`
	UpcomingTournaments int64 `json:"upcoming_tournaments"`
	LiveTournaments     int64 `json:"live_tournaments"`
	TotalParticipants   int64 `json:"total_participants"`
	PendingParticipants int64 `json:"pending_participants"`
	PendingRedemptions  int64 `json:"pending_redemptions"`
	PendingRedeemAmount int64 `json:"pending_redeem_amount"`
	TotalBalance        int64 `json:"total_balance"`
}
