package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mveale/worddragon/internal/dependencies/clock"
	"github.com/mveale/worddragon/internal/dependencies/random"
	"github.com/mveale/worddragon/internal/services/auth"
	"github.com/mveale/worddragon/internal/services/game"
	"github.com/mveale/worddragon/internal/services/lobby"
	"github.com/mveale/worddragon/internal/services/roles"
	"github.com/mveale/worddragon/internal/services/vote"
	"github.com/mveale/worddragon/internal/sse"
	"github.com/mveale/worddragon/internal/storage"
	"github.com/mveale/worddragon/internal/storage/memory"
	redisstorage "github.com/mveale/worddragon/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	RolesService    *roles.Service
	VoteService     *vote.Service
	AuthService     *auth.Service
	GameController  *game.Controller
	LobbyController *lobby.Controller
	HubManager      *sse.HubManager
	Broadcaster     *sse.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds token signing settings; the secret is required in
	// production and randomized by the caller otherwise
	AuthConfig auth.Config
	// LobbyConfig holds game lifecycle settings (optional)
	LobbyConfig lobby.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, cfg.AuthConfig, cfg.LobbyConfig, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	authCfg auth.Config,
	lobbyCfg lobby.Config,
	logger *slog.Logger,
) *App {
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)

	rolesService := roles.New(rnd)
	voteService := vote.New(rnd)
	authService := auth.New(clk, authCfg)
	gameController := game.NewController(store, voteService, broadcaster, clk, logger)
	lobbyController := lobby.NewController(store, rolesService, broadcaster, clk, rnd, logger, lobbyCfg)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		RolesService:    rolesService,
		VoteService:     voteService,
		AuthService:     authService,
		GameController:  gameController,
		LobbyController: lobbyController,
		HubManager:      hubManager,
		Broadcaster:     broadcaster,
	}
}
