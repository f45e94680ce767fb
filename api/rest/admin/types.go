package admin

import "time"

// AccountRow is one line of the admin account listing
type AccountRow struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	Tier             string     `json:"tier"`
	Status           string     `json:"status"`
	Bucket           string     `json:"bucket"`
	RemainingCredits int        `json:"remaining_credits"`
	Allowance        int        `json:"allowance"`
	NextResetAt      *time.Time `json:"next_reset_at,omitempty"`
}

// ListResponse is the admin account listing
type ListResponse struct {
	Accounts []AccountRow `json:"accounts"`
	Limit    int          `json:"limit"`
	Offset   int          `json:"offset"`
}
