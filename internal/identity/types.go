package identity

// Kind distinguishes how an identity was established
type Kind string

const (
	KindAuthenticated Kind = "authenticated"
	KindAnonymous     Kind = "anonymous"
)

// Identity is the resolved principal a quota check runs against: either an
// authenticated account or an anonymous visitor tracked by hashed client IP.
// Raw IP addresses never leave the resolver.
type Identity struct {
	Kind   Kind
	UserID string // set when Kind is KindAuthenticated
	IPHash string // sha-256 hex digest, set when Kind is KindAnonymous
}

// returns the stable key quota counters are tracked under
func (i Identity) Key() string {
	if i.Kind == KindAuthenticated {
		return i.UserID
	}

	return i.IPHash
}

// Resolver turns request credentials into an Identity
type Resolver struct {
	allowFallback bool
}
