package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/IlyaBatulin/lesopilka/cache"
	"github.com/IlyaBatulin/lesopilka/config"
	"github.com/IlyaBatulin/lesopilka/migrations"
	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points config.DB at a fresh in-memory database for one test
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := migrations.Up(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	prevDB, prevPool := config.DB, config.Pool
	config.DB, config.Pool = db, nil
	cache.Invalidate()
	t.Cleanup(func() {
		cache.Invalidate()
		config.DB, config.Pool = prevDB, prevPool
		sqlDB.Close()
	})
	return db
}

func ptr[T any](v T) *T { return &v }

// seedCatalog creates Lumber(1) → {Boards(2) → Planed(4), Beams(3)} and Tools(5)
func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()

	categories := []models.Category{
		{ID: 1, Name: "Пиломатериалы"},
		{ID: 2, Name: "Доска", ParentID: ptr(int64(1)), Position: ptr(1)},
		{ID: 3, Name: "Брус", ParentID: ptr(int64(1)), Position: ptr(2)},
		{ID: 4, Name: "Строганая доска", ParentID: ptr(int64(2))},
		{ID: 5, Name: "Инструменты"},
	}
	if err := db.Create(&categories).Error; err != nil {
		t.Fatalf("seed categories: %v", err)
	}

	var grade1, grade2, dry models.Characteristics
	grade1.Set("grade", models.StringValue("1"))
	grade1.Set("thickness", models.NumberValue(50))
	grade2.Set("grade", models.StringValue("2"))
	dry.Set("moisture", models.StringValue("сухая"))

	products := []models.Product{
		{ID: 10, Name: "Доска 50x150", CategoryID: 2, Price: decimal.NewFromInt(450), Unit: "шт", Stock: 10, Characteristics: grade1},
		{ID: 11, Name: "Доска 25x100", CategoryID: 2, Price: decimal.NewFromInt(210), Unit: "шт", Stock: 0, Characteristics: grade2},
		{ID: 12, Name: "Доска строганая", CategoryID: 4, Price: decimal.Zero, Unit: "м³", Stock: 3, Characteristics: dry},
		{ID: 13, Name: "Брус 100x100", CategoryID: 3, Price: decimal.NewFromInt(900), Unit: "шт", Stock: 5},
		{ID: 14, Name: "Пила", CategoryID: 5, Price: decimal.NewFromInt(1500), Unit: "шт", Stock: 1},
	}
	if err := db.Create(&products).Error; err != nil {
		t.Fatalf("seed products: %v", err)
	}
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatal(err)
	}
	return n
}

var bg = context.Background()
