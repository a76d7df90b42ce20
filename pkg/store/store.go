package store

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"tiendascan/internal/models"
	"tiendascan/pkg/config"
	"tiendascan/pkg/logger"
)

// Store wraps the relational backend for catalog, sales and alert history
type Store struct {
	db *gorm.DB
}

// Open connects to PostgreSQL and runs the schema migration
func Open(cfg *config.DatabaseConfig) (*Store, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		return nil, err
	}

	logger.Info("Database connected",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database))
	return store, nil
}

// NewWithDB wraps an existing gorm connection. Used by tests.
func NewWithDB(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) migrate() error {
	if err := s.db.AutoMigrate(
		&models.Branch{},
		&models.Product{},
		&models.StockLevel{},
		&models.Sale{},
		&models.SaleItem{},
		&models.AlertEvent{},
	); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping verifies the database connection
func (s *Store) Ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
