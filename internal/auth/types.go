package auth

import "github.com/golang-jwt/jwt/v5"

// Claims holds the JWT payload for an authenticated account
type Claims struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin,omitempty"`
	jwt.RegisteredClaims
}
