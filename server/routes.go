package server

import (
	"github.com/cinevault/cinevault/logger"
	"github.com/cinevault/cinevault/server/endpoint"
	"github.com/cinevault/cinevault/server/middleware"
)

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	endpoint.TokenIssuer
	middleware.TokenVerifier
}

// Deps bundles everything route registration needs.
type Deps struct {
	Identities endpoint.IdentityStore
	Favorites  endpoint.FavoriteStore
	Catalog    endpoint.Catalog
	Tokens     TokenService
	Health     endpoint.HealthChecker
	Log        *logger.Logger
}

// RegisterRoutes wires the public API under /api. Register, login, and the
// health probes are open; everything else sits behind the bearer-token gate.
func (s *Server) RegisterRoutes(deps Deps) {
	api := s.engine.Group("/api")

	api.GET("/health", endpoint.Health())
	api.GET("/ready", endpoint.Ready(deps.Health))

	authGroup := api.Group("/auth")
	authGroup.POST("/register", endpoint.Register(deps.Identities, deps.Tokens, deps.Log))
	authGroup.POST("/login", endpoint.Login(deps.Identities, deps.Tokens, deps.Log))

	protected := api.Group("")
	protected.Use(middleware.Auth(deps.Tokens))
	protected.GET("/films", endpoint.Films(deps.Catalog))
	protected.GET("/favorites", endpoint.ListFavorites(deps.Favorites))
	protected.POST("/favorites", endpoint.CreateFavorite(deps.Favorites))
	protected.DELETE("/favorites/:id", endpoint.DeleteFavorite(deps.Favorites))
}
