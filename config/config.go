package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Port    int    `env:"PORT" envDefault:"8080"`
	GinMode string `env:"GIN_MODE" envDefault:"debug"`
	DBPath  string `env:"DB_PATH" envDefault:"easyfood.db"`

	JWTSecret     string        `env:"JWT_SECRET" envDefault:"easyfood_super_secret_2024"`
	JWTExpiration time.Duration `env:"JWT_EXPIRATION" envDefault:"24h"`

	// Checkout fee policy, overridable for testing and promotions.
	DeliveryFee decimal.Decimal `env:"DELIVERY_FEE" envDefault:"2.99"`
	ServiceFee  decimal.Decimal `env:"SERVICE_FEE" envDefault:"1.50"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// OpenDB opens the embedded SQLite database. The pool is capped at one
// connection: the store is single-writer and SQLite serializes writers
// anyway, so a larger pool only adds lock contention.
func OpenDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}
