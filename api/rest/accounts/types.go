package accounts

import "time"

// BalanceResponse reports the live credit position of the account
type BalanceResponse struct {
	Bucket           string     `json:"bucket"`
	RemainingCredits int        `json:"remaining_credits"`
	Allowance        int        `json:"allowance"`
	NextResetAt      *time.Time `json:"next_reset_at,omitempty"` // subscribers only
}
