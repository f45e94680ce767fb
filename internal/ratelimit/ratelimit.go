// Package ratelimit provides transport-level request throttling per client
// IP. It is abuse control for the HTTP surface and entirely separate from
// the credit quota: a request that passes here can still be refused by the
// credit engine.
package ratelimit

import (
	"fmt"

	"github.com/gin-gonic/gin"
	limiter "github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// builds a gin middleware limiting each client IP to the formatted rate,
// e.g. "120-M" for 120 requests per minute
func Middleware(formatted string) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", formatted, err)
	}

	instance := limiter.New(memory.NewStore(), rate, limiter.WithTrustForwardHeader(true))

	return mgin.NewMiddleware(instance), nil
}
