package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const defaultGeneratorEndpoint = "https://api.replicate.com/v1"

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	databaseURL := os.Getenv("DATABASE_URL")
	jwtSecret := os.Getenv("JWT_SECRET")
	sessionSecret := os.Getenv("SESSION_SECRET")
	syncSecret := os.Getenv("SUBSCRIPTION_SYNC_SECRET")
	generatorEndpoint := os.Getenv("GENERATOR_API_ENDPOINT")
	generatorToken := os.Getenv("GENERATOR_API_TOKEN")
	environment := os.Getenv("ENVIRONMENT")
	rateLimit := os.Getenv("API_RATE_LIMIT")

	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if sessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable is required")
	}

	if syncSecret == "" {
		return nil, fmt.Errorf("SUBSCRIPTION_SYNC_SECRET environment variable is required")
	}

	if generatorToken == "" {
		return nil, fmt.Errorf("GENERATOR_API_TOKEN environment variable is required")
	}

	if generatorEndpoint == "" {
		generatorEndpoint = defaultGeneratorEndpoint
	}

	if environment == "" {
		environment = "development"
	}

	if rateLimit == "" {
		rateLimit = "120-M" // 120 requests per minute per client IP
	}

	allowAnonymousFallback := os.Getenv("ALLOW_ANONYMOUS_FALLBACK") == "true"

	// the fallback identity exists for local development and tests only;
	// in production a request without a resolvable identity must be rejected
	if allowAnonymousFallback && environment == "production" {
		return nil, fmt.Errorf("ALLOW_ANONYMOUS_FALLBACK must not be enabled in production")
	}

	return &Config{
		DatabaseURL:            databaseURL,
		JWTSecret:              jwtSecret,
		SessionSecret:          sessionSecret,
		SubscriptionSyncSecret: syncSecret,
		GeneratorEndpoint:      generatorEndpoint,
		GeneratorToken:         generatorToken,
		Environment:            environment,
		RateLimit:              rateLimit,
		AllowAnonymousFallback: allowAnonymousFallback,
	}, nil
}
