package config

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// DB is the GORM handle every service reads and writes through
	DB *gorm.DB
	// Pool is a raw pgx pool for aggregate queries. It stays nil on sqlite.
	Pool *pgxpool.Pool
)

func InitDB(cfg DatabaseConfig) error {
	var err error
	DB, err = OpenGorm(cfg)
	if err != nil {
		return err
	}
	logrus.WithField("driver", cfg.Driver).Info("database connected (GORM)")

	if cfg.Driver != "postgres" {
		return nil
	}

	Pool, err = pgxpool.New(context.Background(), cfg.URL)
	if err != nil {
		return fmt.Errorf("unable to create pgx pool: %w", err)
	}
	ctx, cancel := WithTimeout()
	defer cancel()
	if err = Pool.Ping(ctx); err != nil {
		return fmt.Errorf("pgx ping failed: %w", err)
	}
	logrus.Info("database connected (pgx)")
	return nil
}

// OpenGorm opens a GORM connection for cfg.Driver
func OpenGorm(cfg DatabaseConfig) (*gorm.DB, error) {
	gormLogger := logger.Default.LogMode(logger.Silent)
	if cfg.LogQueries {
		gormLogger = logger.Default.LogMode(logger.Info)
	}
	gcfg := &gorm.Config{
		Logger:  gormLogger,
		NowFunc: func() time.Time { return time.Now().UTC() },
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.URL)
	case "sqlite":
		dialector = sqlite.Open(cfg.URL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Driver, err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		sqlDB.SetConnMaxIdleTime(2 * time.Minute)
	}
	return db, nil
}

func CloseDB() {
	if Pool != nil {
		Pool.Close()
		logrus.Info("database connection closed (pgx)")
	}
	if DB != nil {
		if sqlDB, _ := DB.DB(); sqlDB != nil {
			sqlDB.Close()
			logrus.Info("database connection closed (GORM)")
		}
	}
}

// WithTimeout returns a context with a 10s timeout
func WithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func WithCustomTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}
