package credits

import (
	"context"

	"codeberg.org/svgforge/server/internal/identity"
	"codeberg.org/svgforge/server/internal/policy"
	"codeberg.org/svgforge/server/svgforge/credits"
)

// QuotaEngine is the slice of the credit engine the handlers need
type QuotaEngine interface {
	CheckAndDeduct(ctx context.Context, id identity.Identity, genType policy.GenerationType) (credits.Result, error)
}

// Request is the body of a check-and-deduct call
type Request struct {
	GenerationType string `json:"generation_type" binding:"required"`
}

// Response reports a granted deduction
type Response struct {
	Success          bool   `json:"success"`
	RemainingCredits int    `json:"remaining_credits"`
	Bucket           string `json:"bucket"`
}
