// Package store is the persistence boundary. It owns the database handle,
// migrations and the uniqueness rules that span rows.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/broxB/AgroPlan-sub000/internal/models"
)

// Duplicate-key violations surfaced to callers instead of raw driver errors.
var (
	ErrDuplicateParcel      = errors.New("parcel number already in use")
	ErrDuplicateField       = errors.New("field already planned for this year")
	ErrDuplicateCrop        = errors.New("crop name already in use")
	ErrDuplicateFertilizer  = errors.New("fertilizer already exists")
	ErrDuplicateCultivation = errors.New("cultivation role already planted")
)

// Store wraps the database handle.
type Store struct {
	db *gorm.DB
}

// New wraps an open database handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Open connects to the configured database. Supported drivers are sqlite
// and postgres.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", driver, err)
	}
	return db, nil
}

// AutoMigrate creates or updates the schema for all entities.
func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(models.All()...)
}

// DB exposes the underlying handle.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn against a transactional store. Returning an error
// rolls the transaction back.
func (s *Store) Transaction(ctx context.Context, fn func(*Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// one runs a single-row query and maps a missing row to (nil, nil).
func one[T any](q *gorm.DB) (*T, error) {
	var row T
	if err := q.First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
