// Package credits exposes the quota engine to the generation handlers that
// live outside this service. The response mapping here is the engine's
// public contract: exhaustion is 429 with actionable copy, an unresolvable
// identity is 403, malformed generation types are 400.
package credits

import (
	"errors"
	"net/http"

	apierrors "codeberg.org/svgforge/server/internal/errors"
	"codeberg.org/svgforge/server/internal/identity"
	"codeberg.org/svgforge/server/internal/logger"
	"codeberg.org/svgforge/server/internal/policy"
	"codeberg.org/svgforge/server/svgforge/credits"
	"github.com/gin-gonic/gin"
)

// upsell copy per exhausted bucket
const (
	upsellAnonymous = "Sign up to continue generating for free and get 6 bonus credits!"
	upsellLifetime  = "You've used all your free credits. Upgrade to a plan to keep generating."
	upsellMonthly   = "You've used your monthly credits. Upgrade your plan or wait for your next billing cycle."
)

// creates the check-and-deduct handler. Deduction is final once committed:
// there is no refund path, even if the caller's generation later fails.
func Handler(engine QuotaEngine, resolver *identity.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Request

		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.ValidationError(c, err)
			return
		}

		genType, err := policy.ParseGenerationType(req.GenerationType)
		if err != nil {
			apierrors.BadRequest(c, "unknown generation type", nil)
			return
		}

		id, err := resolver.Resolve(c)
		if err != nil {
			// no session and no usable client IP: refuse rather than hand
			// out an unmetered identity
			apierrors.Forbidden(c, "unable to verify request origin")
			return
		}

		result, err := engine.CheckAndDeduct(c.Request.Context(), id, genType)
		if err != nil {
			RespondEngineError(c, err)
			return
		}

		if !result.Success {
			logger.Info("quota exhausted",
				"identity_kind", id.Kind,
				"generation_type", genType,
				"bucket", result.Bucket,
			)
			apierrors.QuotaExhausted(c, UpsellMessage(result.Bucket))
			return
		}

		c.JSON(http.StatusOK, Response{
			Success:          true,
			RemainingCredits: result.Remaining,
			Bucket:           string(result.Bucket),
		})
	}
}

// returns the user-facing message for an exhausted bucket
func UpsellMessage(bucket credits.Bucket) string {
	switch bucket {
	case credits.BucketDaily:
		return upsellAnonymous
	case credits.BucketLifetime:
		return upsellLifetime
	case credits.BucketMonthly:
		return upsellMonthly
	}

	return "generation quota exhausted"
}

// maps engine errors onto the HTTP contract; shared with the generation
// front door
func RespondEngineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, policy.ErrUnknownGenerationType):
		apierrors.BadRequest(c, "unknown generation type", nil)
	case errors.Is(err, identity.ErrMissingIdentity):
		apierrors.Forbidden(c, "unable to verify request origin")
	case errors.Is(err, credits.ErrAccountNotFound):
		apierrors.Forbidden(c, "account no longer exists")
	default:
		// transient store failure; the caller must not assume the
		// deduction happened
		apierrors.InternalError(c, "failed to check generation quota", err)
	}
}
