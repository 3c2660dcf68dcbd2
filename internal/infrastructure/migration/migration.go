package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/parlourcover/parlour/internal/shared/logger"
)

// NewStrategy picks goose scripts for mysql and postgres and gorm
// AutoMigrate for sqlite.
func NewStrategy(driver string, log logger.Interface) (Strategy, error) {
	switch driver {
	case "mysql", "postgres":
		return NewGooseStrategy(driver, log)
	case "sqlite":
		return NewAutoMigrateStrategy(log), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Run migrates db to the latest schema for driver.
func Run(db *gorm.DB, driver string, log logger.Interface) error {
	strategy, err := NewStrategy(driver, log)
	if err != nil {
		return err
	}

	if err := strategy.Migrate(db); err != nil {
		return fmt.Errorf("migration failed with strategy %s: %w", strategy.GetName(), err)
	}
	return nil
}
