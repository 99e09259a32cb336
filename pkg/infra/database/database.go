package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/arbetsytan/arbetsytan/pkg/domain/document"
	"github.com/arbetsytan/arbetsytan/pkg/domain/note"
	"github.com/arbetsytan/arbetsytan/pkg/domain/project"
	"github.com/arbetsytan/arbetsytan/pkg/domain/scout"
	"github.com/arbetsytan/arbetsytan/pkg/domain/transcript"
)

// DB represents the database connection
type DB struct {
	logger *logrus.Logger
	*gorm.DB
}

// Config holds database configuration
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// NewDB opens the connection, configures the pool and applies schema
// migrations before returning.
func NewDB(logger *logrus.Logger, cfg *Config) (*DB, error) {
	logger.WithFields(logrus.Fields{
		"host":    cfg.Host,
		"port":    cfg.Port,
		"db":      cfg.DBName,
		"user":    cfg.User,
		"sslmode": cfg.SSLMode,
	}).Info("connecting to database")

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	logger.Info("applying database migrations")
	if err := migrate(gormDB); err != nil {
		logger.WithError(err).Error("failed to apply database migrations")
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}

	return &DB{logger: logger, DB: gormDB}, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&project.Project{},
		&project.Event{},
		&document.Document{},
		&note.Note{},
		&transcript.Transcript{},
		&scout.Feed{},
		&scout.Item{},
	)
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
