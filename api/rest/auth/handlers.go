package auth

import (
	"net/http"
	"slices"

	"codeberg.org/svgforge/server/internal/auth"
	"codeberg.org/svgforge/server/internal/errors"
	"codeberg.org/svgforge/server/internal/logger"
	"codeberg.org/svgforge/server/internal/policy"
	"codeberg.org/svgforge/server/svgforge/accounts"
	"github.com/gin-gonic/gin"
	"github.com/markbates/goth/gothic"
)

// begins the OAuth flow with the requested provider
func BeginAuthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		provider := c.Param("provider")

		if !isValidProvider(provider) {
			errors.BadRequest(c, "invalid provider", nil)
			return
		}

		// set provider in query for gothic
		q := c.Request.URL.Query()
		q.Add("provider", provider)
		c.Request.URL.RawQuery = q.Encode()

		gothic.BeginAuthHandler(c.Writer, c.Request)
	}
}

// completes the OAuth flow: provisions the account (with its lifetime
// credit grant) on first sign-in and returns a JWT
func CallbackHandler(accountRepo *accounts.Repository, pol policy.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		provider := c.Param("provider")

		q := c.Request.URL.Query()
		q.Add("provider", provider)
		c.Request.URL.RawQuery = q.Encode()

		gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
		if err != nil {
			errors.InternalError(c, "authentication failed", err)
			return
		}

		account, err := accountRepo.FindOrCreateByProvider(
			c.Request.Context(),
			gothUser.Provider,
			gothUser.UserID,
			gothUser.Email,
			gothUser.Name,
			pol.LifetimeGrant(),
		)

		if err != nil {
			errors.InternalError(c, "failed to create account", err)
			return
		}

		token, err := auth.GenerateJWT(account.ID, account.Email, account.IsAdmin)
		if err != nil {
			errors.InternalError(c, "failed to generate token", err)
			return
		}

		c.JSON(http.StatusOK, AuthResponse{
			Account: account,
			Token:   token,
		})
	}
}

// returns the authenticated account's profile
func GetCurrentAccountHandler(accountRepo *accounts.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)

		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		account, err := accountRepo.FindByID(c.Request.Context(), userID)
		if err != nil {
			errors.NotFound(c, "account")
			return
		}

		c.JSON(http.StatusOK, AccountResponse{Account: account})
	}
}

// clears the OAuth session
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := gothic.Logout(c.Writer, c.Request); err != nil {
			logger.ErrorErr(err, "failed to logout user from gothic session")
		}
		c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
	}
}

func isValidProvider(provider string) bool {
	validProviders := []string{"google", "github"}
	return slices.Contains(validProviders, provider)
}
