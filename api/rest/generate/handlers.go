package generate

import (
	"net/http"

	creditsapi "codeberg.org/svgforge/server/api/rest/credits"
	apierrors "codeberg.org/svgforge/server/internal/errors"
	"codeberg.org/svgforge/server/internal/generator"
	"codeberg.org/svgforge/server/internal/identity"
	"codeberg.org/svgforge/server/internal/logger"
	"codeberg.org/svgforge/server/internal/policy"
	"github.com/gin-gonic/gin"
)

// creates the generation front door: resolve the identity, charge the
// quota, and only then hand the job to the provider. The charge is final
// even if the provider call fails afterwards - that trade-off keeps the
// deduct path a single durable mutation.
func Handler(engine creditsapi.QuotaEngine, resolver *identity.Resolver, gen generator.Generator) gin.HandlerFunc {
	return func(c *gin.Context) {
		genType, err := policy.ParseGenerationType(c.Param("type"))
		if err != nil {
			apierrors.BadRequest(c, "unknown generation type", nil)
			return
		}

		var req Request

		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.ValidationError(c, err)
			return
		}

		id, err := resolver.Resolve(c)
		if err != nil {
			apierrors.Forbidden(c, "unable to verify request origin")
			return
		}

		result, err := engine.CheckAndDeduct(c.Request.Context(), id, genType)
		if err != nil {
			creditsapi.RespondEngineError(c, err)
			return
		}

		if !result.Success {
			apierrors.QuotaExhausted(c, creditsapi.UpsellMessage(result.Bucket))
			return
		}

		artifact, err := gen.Generate(c.Request.Context(), generator.Request{
			Type:   genType,
			Prompt: req.Prompt,
			Style:  req.Style,
			Size:   req.Size,
		})

		if err != nil {
			// the deduction stands; surface the failure without implying
			// the credit came back
			logger.ErrorErr(err, "generation failed after deduction",
				"generation_type", genType,
				"identity_kind", id.Kind,
			)

			c.JSON(http.StatusInternalServerError, gin.H{
				"error":             "generation_failed",
				"message":           "failed to generate, your credit was consumed",
				"remaining_credits": result.Remaining,
			})

			return
		}

		c.JSON(http.StatusOK, Response{
			URL:              artifact.URL,
			Model:            artifact.Model,
			RemainingCredits: result.Remaining,
			Bucket:           string(result.Bucket),
		})
	}
}
