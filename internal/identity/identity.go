package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"codeberg.org/svgforge/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// returned when a request carries neither an authenticated session nor a
// usable client IP; production handlers map this to 403
var ErrMissingIdentity = errors.New("no authenticated session and no usable client ip")

// stand-in key for local development when no client IP is available;
// only used when the resolver was built with allowFallback
const fallbackClientKey = "development-client"

// creates a resolver. allowFallback must only ever be true outside
// production (config enforces this); it substitutes a fixed key when the
// client IP cannot be determined instead of rejecting the request.
func NewResolver(allowFallback bool) *Resolver {
	return &Resolver{allowFallback: allowFallback}
}

// resolves the request principal: an authenticated session wins, otherwise
// the client IP is hashed into an anonymous identity
func (r *Resolver) Resolve(c *gin.Context) (Identity, error) {
	if userID, ok := auth.GetUserID(c); ok {
		return Identity{Kind: KindAuthenticated, UserID: userID}, nil
	}

	// gin resolves forwarding headers (X-Forwarded-For, X-Real-IP) per the
	// engine's trusted proxy settings before falling back to RemoteAddr
	ip := c.ClientIP()

	if ip == "" {
		if !r.allowFallback {
			return Identity{}, ErrMissingIdentity
		}

		ip = fallbackClientKey
	}

	return Identity{Kind: KindAnonymous, IPHash: HashIP(ip)}, nil
}

// derives the stable anonymous identity key from a client IP. One-way,
// deterministic, fixed length; the raw address is never stored or logged.
func HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:])
}
