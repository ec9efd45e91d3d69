package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/polarsource/organization-service/internal/domain/model"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	logger.Info("Creating PostgreSQL extensions...")
	if err := createExtensions(db); err != nil {
		logger.Error("Failed to create extensions", zap.Error(err))
		return err
	}

	// Custom enum types must exist before auto-migrate references them
	logger.Info("Creating custom PostgreSQL types...")
	if err := createCustomTypes(db); err != nil {
		logger.Error("Failed to create custom types", zap.Error(err))
		return err
	}

	logger.Info("Running GORM auto-migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Account{},
		&model.Organization{},
		&model.Product{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	logger.Info("Creating custom indexes and constraints...")
	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// createCustomIndexes creates indexes and constraints GORM doesn't handle
func createCustomIndexes(db *gorm.DB) error {
	// Slugs are unique ignoring case
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS organizations_slug_lower_key ON organizations (LOWER(slug))`).Error; err != nil {
		return err
	}

	// Review thresholds are revenue amounts and can never go negative
	if err := db.Exec(`ALTER TABLE organizations DROP CONSTRAINT IF EXISTS organizations_next_review_threshold_check`).Error; err != nil {
		return err
	}
	if err := db.Exec(`ALTER TABLE organizations ADD CONSTRAINT organizations_next_review_threshold_check CHECK (next_review_threshold >= 0)`).Error; err != nil {
		return err
	}

	// Partial index backing the storefront listing query
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_organizations_storefront_enabled ON organizations (created_at DESC) WHERE (profile_settings->>'enabled')::boolean IS TRUE AND blocked_at IS NULL`).Error; err != nil {
		return err
	}

	return nil
}

// createExtensions creates required PostgreSQL extensions
func createExtensions(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error; err != nil {
		return err
	}
	return nil
}

// createCustomTypes creates custom PostgreSQL enum types
func createCustomTypes(db *gorm.DB) error {
	var exists bool

	db.Raw(`SELECT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'organization_status')`).Scan(&exists)
	if !exists {
		if err := db.Exec(`CREATE TYPE organization_status AS ENUM ('created', 'onboarding_started', 'under_review', 'denied', 'active')`).Error; err != nil {
			return err
		}
	}

	db.Raw(`SELECT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'account_status')`).Scan(&exists)
	if !exists {
		if err := db.Exec(`CREATE TYPE account_status AS ENUM ('created', 'onboarding_started', 'under_review', 'active')`).Error; err != nil {
			return err
		}
	}

	return nil
}
