package main

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/svgforge/server/internal/config"
	"codeberg.org/svgforge/server/internal/generator"
	"codeberg.org/svgforge/server/internal/identity"
	"codeberg.org/svgforge/server/internal/policy"
	"codeberg.org/svgforge/server/svgforge/accounts"
	"codeberg.org/svgforge/server/svgforge/credits"
	"codeberg.org/svgforge/server/svgforge/subscriptions"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// keep the pool small: the quota row locks are short-lived and hosted
	// poolers only hand out a few connections
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	// CRITICAL: use simple protocol for PgBouncer-style pooler compatibility.
	// Transaction-mode poolers don't support prepared statements, which
	// causes connections to hang on subsequent queries.
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	accountRepo := accounts.NewRepository(db)
	subscriptionRepo := subscriptions.NewRepository(db)

	// the engine owns every write to the usage counters; handlers only see
	// its results
	engine := credits.NewEngine(credits.NewStore(db), policy.Default())

	resolver := identity.NewResolver(cfg.AllowAnonymousFallback)
	generatorClient := generator.NewClient(cfg.GeneratorEndpoint, cfg.GeneratorToken)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	server := &Server{
		db:               db,
		config:           cfg,
		accountRepo:      accountRepo,
		subscriptionRepo: subscriptionRepo,
		engine:           engine,
		resolver:         resolver,
		generator:        generatorClient,
		router:           router,
	}

	if err := RegisterRoutes(router, server); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to register routes: %w", err)
	}

	return server, nil
}
