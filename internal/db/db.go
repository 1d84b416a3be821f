package db

import (
	"context"
	"fmt"
	"log/slog"
	"yatube/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured database and migrates the schema.
// driver is "postgres" or "sqlite"; dsn is the matching connection string.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	slog.Info("database connection established", slog.String("driver", driver))

	if driver == "sqlite" {
		// sqlite allows a single writer; in-memory databases also vanish per connection.
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// Migrate creates or updates all tables.
func Migrate(conn *gorm.DB) error {
	err := conn.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
		&models.Notification{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	slog.Info("database migration completed")
	return nil
}

// SeedGroups creates the given slug/title groups when the catalog is empty.
func SeedGroups(ctx context.Context, conn *gorm.DB, seeds [][2]string) error {
	var count int64
	if err := conn.WithContext(ctx).Model(&models.Group{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 || len(seeds) == 0 {
		slog.Debug("groups already seeded, skipping")
		return nil
	}

	for _, seed := range seeds {
		group := models.Group{Slug: seed[0], Title: seed[1]}
		if err := conn.WithContext(ctx).Create(&group).Error; err != nil {
			return fmt.Errorf("failed to create group %s: %w", seed[0], err)
		}
	}
	slog.Info("initial groups created", slog.Int("count", len(seeds)))
	return nil
}
