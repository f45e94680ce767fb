package auth

import "codeberg.org/svgforge/server/svgforge/accounts"

// AuthResponse is returned after a successful OAuth callback
type AuthResponse struct {
	Account *accounts.Account `json:"account"`
	Token   string            `json:"token"`
}

// AccountResponse wraps the current account for /auth/me
type AccountResponse struct {
	Account *accounts.Account `json:"account"`
}
