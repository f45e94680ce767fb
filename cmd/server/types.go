package main

import (
	"codeberg.org/svgforge/server/internal/config"
	"codeberg.org/svgforge/server/internal/generator"
	"codeberg.org/svgforge/server/internal/identity"
	"codeberg.org/svgforge/server/svgforge/accounts"
	"codeberg.org/svgforge/server/svgforge/credits"
	"codeberg.org/svgforge/server/svgforge/subscriptions"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// holds all dependencies and state for the API server
type Server struct {
	db               *pgxpool.Pool
	config           *config.Config
	accountRepo      *accounts.Repository
	subscriptionRepo *subscriptions.Repository
	engine           *credits.Engine
	resolver         *identity.Resolver
	generator        generator.Generator
	router           *gin.Engine
}
