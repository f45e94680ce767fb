package config

type Config struct {
	DatabaseURL            string
	JWTSecret              string
	SessionSecret          string
	SubscriptionSyncSecret string
	GeneratorEndpoint      string
	GeneratorToken         string
	Environment            string
	RateLimit              string
	AllowAnonymousFallback bool
}

// reports whether the server runs with production hardening
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
