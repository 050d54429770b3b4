package service

import (
	"github.com/vkarimov/tokenwatch/internal/config"
	"github.com/vkarimov/tokenwatch/internal/logger"
	"github.com/vkarimov/tokenwatch/internal/store"
)

// Services bundles all application services for injection into the transport
// layer. All services are stateless with respect to process memory; the only
// mutable state lives behind the repositories.
type Services struct {
	AuthService      AuthService
	UserService      UserService
	WatchlistService WatchlistService
}

// NewServices constructs the full service graph over the given repositories.
func NewServices(repositories *store.Repositories, cfg config.App, logger *logger.Logger) *Services {
	logger.Info().Msg("creating services...")

	return &Services{
		AuthService:      NewAuthService(repositories.Users, cfg, logger),
		UserService:      NewUserService(repositories.Users, logger),
		WatchlistService: NewWatchlistService(repositories.Watchlist, repositories.Users, logger),
	}
}
