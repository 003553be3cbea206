package db

import (
	"fmt"
	"time"

	"github.com/beanvanilla/storefront-backend/config"
	appLogger "github.com/beanvanilla/storefront-backend/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Initialize connects to postgres, retrying with exponential backoff before giving up.
func Initialize(cfg *config.DatabaseConfig) error {
	appLogger.Info("Connecting to database", map[string]interface{}{
		"host":     cfg.Host,
		"port":     cfg.Port,
		"database": cfg.DBName,
		"user":     cfg.User,
	})

	open := func() (*gorm.DB, error) {
		conn, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return nil, err
		}
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, err
		}
		if err := sqlDB.Ping(); err != nil {
			sqlDB.Close()
			return nil, err
		}
		return conn, nil
	}

	conn, err := connectWithRetry(open, cfg.ConnectRetries, cfg.RetryBackoff, time.Sleep)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	DB = conn

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	appLogger.Info("Database connection established successfully", map[string]interface{}{
		"max_idle_conns": 10,
		"max_open_conns": 100,
	})
	return nil
}

// connectWithRetry calls open up to attempts times, doubling the wait after each failure.
func connectWithRetry(open func() (*gorm.DB, error), attempts int, backoff time.Duration, sleep func(time.Duration)) (*gorm.DB, error) {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	wait := backoff
	for attempt := 1; attempt <= attempts; attempt++ {
		conn, err := open()
		if err == nil {
			return conn, nil
		}
		lastErr = err

		if attempt == attempts {
			break
		}
		appLogger.Warn("Database connection failed, retrying", map[string]interface{}{
			"attempt":      attempt,
			"max_attempts": attempts,
			"retry_in":     wait.String(),
			"error":        err.Error(),
		})
		sleep(wait)
		wait *= 2
	}
	return nil, fmt.Errorf("gave up after %d attempts: %w", attempts, lastErr)
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
