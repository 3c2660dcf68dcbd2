// Package bootstrap holds the startup steps shared by every command:
// configuration, logging, business timezone and the database connection.
package bootstrap

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/parlourcover/parlour/internal/infrastructure/config"
	"github.com/parlourcover/parlour/internal/infrastructure/database"
	"github.com/parlourcover/parlour/internal/shared/biztime"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

// Env is an initialized runtime. Close releases the database and flushes logs.
type Env struct {
	Config *config.Config
	Log    logger.Interface
	DB     *gorm.DB
}

// Load reads configuration and initializes logging and the business timezone
// without touching the database.
func Load(env, configPath string) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(MapEnvToGinMode(env), configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Age and waiting-period arithmetic runs on calendar days in this zone
	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

// Open runs Load and connects to the configured database.
func Open(env, configPath string) (*Env, error) {
	cfg, log, err := Load(env, configPath)
	if err != nil {
		return nil, err
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Env{Config: cfg, Log: log, DB: database.Get()}, nil
}

// Close closes the database and syncs the logger.
func (e *Env) Close() {
	if err := database.Close(); err != nil {
		e.Log.Errorw("failed to close database", "error", err)
	}
	_ = logger.Sync()
}

// MapEnvToGinMode translates deployment environment names to gin modes.
func MapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
