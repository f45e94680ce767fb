package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
)

// accountRow mirrors the admin listing payload
type accountRow struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	Tier             string     `json:"tier"`
	Status           string     `json:"status"`
	Bucket           string     `json:"bucket"`
	RemainingCredits int        `json:"remaining_credits"`
	Allowance        int        `json:"allowance"`
	NextResetAt      *time.Time `json:"next_reset_at,omitempty"`
}

type listResponse struct {
	Accounts []accountRow `json:"accounts"`
}

// message carrying a fetched account listing
type accountsMsg struct {
	accounts []accountRow
}

// message carrying a fetch failure
type errorMsg struct {
	err error
}

// Model is the read-only quota console
type Model struct {
	client    *AdminClient
	table     table.Model
	err       error
	fetchedAt time.Time
	width     int
	height    int
}
