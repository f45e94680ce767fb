package subscriptions

import "codeberg.org/svgforge/server/svgforge/accounts"

// SyncRequest is the payload the billing collaborator posts for each
// provider-side subscription change
type SyncRequest struct {
	UserID         string `json:"user_id" binding:"required"`
	Status         string `json:"status" binding:"required,oneof=active inactive"`
	Tier           string `json:"tier" binding:"required"`
	MonthlyCredits int    `json:"monthly_credits"`
	PeriodStart    string `json:"period_start" binding:"required"` // RFC 3339
	CycleRenewal   bool   `json:"cycle_renewal"`
}

// SyncResponse returns the account state after the sync applied
type SyncResponse struct {
	Account *accounts.Account `json:"account"`
}
