// Package postgres persists keys in a single key/value table through GORM.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormLogger "gorm.io/gorm/logger"

	"github.com/baatolabs/baatometrics-api/internal/config"
	"github.com/baatolabs/baatometrics-api/internal/logger"
	"github.com/baatolabs/baatometrics-api/internal/storage"
)

// Entry is one persisted key/value row
type Entry struct {
	Key       string    `gorm:"primaryKey;column:key"`
	Value     []byte    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName overrides the table name used by GORM
func (Entry) TableName() string {
	return "kv_entries"
}

// Backend persists keys in PostgreSQL
type Backend struct {
	db  *gorm.DB
	log *log.Logger
}

// New connects, migrates the key/value table and returns a backend
func New(cfg *config.Config) (*Backend, error) {
	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return NewWithDB(db), nil
}

// NewWithDB wraps an existing GORM connection
func NewWithDB(db *gorm.DB) *Backend {
	return &Backend{
		db:  db,
		log: logger.Storage("postgres"),
	}
}

func (b *Backend) Load(key string) ([]byte, error) {
	var entry Entry
	if err := b.db.First(&entry, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		b.log.Error("failed to load key", "key", key, "error", err)
		return nil, fmt.Errorf("failed to load key %s: %w", key, err)
	}
	return entry.Value, nil
}

func (b *Backend) Save(key string, value []byte) error {
	entry := Entry{Key: key, Value: value}
	err := b.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		b.log.Error("failed to save key", "key", key, "error", err)
		return fmt.Errorf("failed to save key %s: %w", key, err)
	}
	b.log.Debug("key saved", "key", key, "bytes", len(value))
	return nil
}

func (b *Backend) Delete(key string) error {
	if err := b.db.Delete(&Entry{}, "key = ?", key).Error; err != nil {
		b.log.Error("failed to delete key", "key", key, "error", err)
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// Connect establishes a connection to the PostgreSQL database
func Connect(cfg *config.Config) (*gorm.DB, error) {
	log := logger.Storage("postgres")

	if cfg.DB.Host == "" || cfg.DB.Port == "" || cfg.DB.Name == "" || cfg.DB.User == "" {
		return nil, fmt.Errorf("incomplete database configuration")
	}

	dsn := cfg.GetDatabaseURL()
	log.Debug("Connecting to database", "host", cfg.DB.Host, "port", cfg.DB.Port, "database", cfg.DB.Name)

	var gormLoggerInstance gormLogger.Interface
	if cfg.Server.GinMode == "debug" {
		gormLoggerInstance = gormLogger.Default.LogMode(gormLogger.Info)
	} else {
		gormLoggerInstance = gormLogger.Default.LogMode(gormLogger.Silent)
	}

	gormConfig := &gorm.Config{
		Logger: gormLoggerInstance,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		PrepareStmt: true,
	}

	// Retry with exponential backoff: the database container may still be
	// coming up when the service starts.
	var db *gorm.DB
	var err error
	maxRetries := 3
	retryDelay := time.Second * 2

	for attempt := 1; attempt <= maxRetries; attempt++ {
		db, err = gorm.Open(postgres.Open(dsn), gormConfig)
		if err == nil {
			break
		}

		log.Warn("Database connection failed", "attempt", attempt, "error", err)
		if attempt < maxRetries {
			time.Sleep(retryDelay)
			retryDelay *= 2
		}
	}

	if err != nil {
		log.Error("Failed to connect to database after retries", "error", err, "attempts", maxRetries)
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
	}

	if err := testConnection(db); err != nil {
		log.Error("Database connection test failed", "error", err)
		return nil, fmt.Errorf("database connection test failed: %w", err)
	}

	log.Info("Successfully connected to PostgreSQL database", "host", cfg.DB.Host, "database", cfg.DB.Name)
	return db, nil
}

// AutoMigrate creates the key/value table if it does not exist
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return fmt.Errorf("failed to migrate kv_entries table: %w", err)
	}
	return nil
}

func testConnection(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Close closes the underlying database connection
func (b *Backend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}
