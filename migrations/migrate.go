// Package migrations holds the SQL schema and applies it on startup.
package migrations

import (
	"embed"
	"fmt"

	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed *.sql
var embedMigrations embed.FS

// Up brings the schema up to date. Postgres runs the embedded goose
// migrations; sqlite (local development and tests) is auto-migrated from
// the models instead, since the SQL uses postgres-only types.
func Up(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return AutoMigrate(db)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}
	if err := goose.Up(sqlDB, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// AutoMigrate creates every table from its model
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Admin{},
		&models.AdminSession{},
		&models.ActivityLog{},
	)
}
