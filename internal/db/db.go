package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"quizhive-backend/internal/config"
)

var database *gorm.DB

// InitDBFromConfig opens the postgres connection described by the XML config
// and applies the pool settings.
func InitDBFromConfig(cfg *config.APIConfig) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		cfg.DB.Host, cfg.DB.Port, cfg.DB.Username, cfg.DB.Password,
		cfg.DB.Name, cfg.DB.SSLMode, cfg.Context.TimeZone,
	)

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		// TranslateError maps driver duplicate-key failures onto
		// gorm.ErrDuplicatedKey, which the services rely on.
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		log.Fatalf("failed to access underlying sql.DB: %v", err)
	}
	if cfg.DB.Pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DB.Pool.MaxOpenConns)
	}
	if cfg.DB.Pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DB.Pool.MaxIdleConns)
	}
	if cfg.DB.Pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.DB.Pool.ConnMaxLifetime) * time.Minute)
	}

	database = conn
}

// GetDB returns the shared gorm handle.
func GetDB() *gorm.DB {
	return database
}
