package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/IlyaBatulin/lesopilka/config"
	"github.com/IlyaBatulin/lesopilka/migrations"
	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/IlyaBatulin/lesopilka/services"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// main creates a super admin account and, with -demo, a small catalog.
// Usage: go run ./cmd/seed -email admin@lesopilka.ru -name Admin [-demo]
// The password is read from SEED_ADMIN_PASSWORD or prompted for.
func main() {
	email := flag.String("email", os.Getenv("SEED_ADMIN_EMAIL"), "super admin email")
	name := flag.String("name", "Администратор", "super admin display name")
	demo := flag.Bool("demo", false, "also seed a demo catalog")
	flag.Parse()

	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("Лесопилка - Seeder")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	if err := config.InitDB(cfg.Database); err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	defer config.CloseDB()
	if err := migrations.Up(config.DB); err != nil {
		logrus.WithError(err).Fatal("failed to apply migrations")
	}
	fmt.Println("✓ Connected to database")

	ctx, cancel := config.WithTimeout()
	defer cancel()

	if *email != "" {
		seedAdmin(ctx, *email, *name, adminPassword())
	}
	if *demo {
		if err := seedCatalog(ctx, config.DB); err != nil {
			logrus.WithError(err).Fatal("failed to seed demo catalog")
		}
		fmt.Println("✓ Demo catalog created")
	}
	if *email == "" && !*demo {
		fmt.Println("Nothing to do: pass -email and/or -demo")
		os.Exit(2)
	}
}

func seedAdmin(ctx context.Context, email, name, password string) {
	var existing models.Admin
	err := config.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		fmt.Printf("❌ Admin with email '%s' already exists\n", email)
		os.Exit(1)
	} else if err != gorm.ErrRecordNotFound {
		logrus.WithError(err).Fatal("database error")
	}

	admin, err := services.GetAdminAuthService().CreateAdmin(ctx, email, name, password, models.AdminRoleSuperAdmin)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create super admin")
	}

	fmt.Println()
	fmt.Println("✅ Super Admin Created Successfully!")
	fmt.Printf("ID:    %s\n", admin.ID)
	fmt.Printf("Email: %s\n", admin.Email)
	fmt.Printf("Role:  %s\n", admin.Role)
	fmt.Println()
	fmt.Println("Login at POST /api/v1/admin/login with email and password")
}

// adminPassword reads SEED_ADMIN_PASSWORD or prompts until a valid,
// confirmed password is entered
func adminPassword() string {
	if pw := os.Getenv("SEED_ADMIN_PASSWORD"); pw != "" {
		return pw
	}

	for {
		var password, confirm string
		fmt.Printf("Password (min %d characters): ", services.MinAdminPasswordLength)
		fmt.Scanln(&password)
		if !services.ValidAdminPassword(password) {
			fmt.Println("❌", services.ErrWeakPassword)
			continue
		}
		fmt.Print("Confirm Password: ")
		fmt.Scanln(&confirm)
		if confirm != password {
			fmt.Println("❌ Passwords do not match")
			continue
		}
		return password
	}
}

func seedCatalog(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lumber := models.Category{Name: "Пиломатериалы"}
		if err := tx.Create(&lumber).Error; err != nil {
			return err
		}
		board := models.Category{Name: "Доска обрезная", ParentID: &lumber.ID, Position: intPtr(1)}
		beam := models.Category{Name: "Брус", ParentID: &lumber.ID, Position: intPtr(2)}
		if err := tx.Create(&board).Error; err != nil {
			return err
		}
		if err := tx.Create(&beam).Error; err != nil {
			return err
		}

		products := []models.Product{
			demoProduct("Доска 25x100x6000", board.ID, 180, 120, "thickness", "25 мм", "grade", "1", "wood_type", "сосна"),
			demoProduct("Доска 50x150x6000", board.ID, 450, 80, "thickness", "50 мм", "grade", "1", "wood_type", "сосна"),
			demoProduct("Доска 50x150x6000 (2 сорт)", board.ID, 320, 0, "thickness", "50 мм", "grade", "2", "wood_type", "ель"),
			demoProduct("Брус 100x100x6000", beam.ID, 900, 40, "grade", "1", "moisture", "естественная"),
			demoProduct("Брус 150x150x6000 камерной сушки", beam.ID, 0, 10, "grade", "1", "moisture", "сухая"),
		}
		return tx.Create(&products).Error
	})
}

func demoProduct(name string, categoryID int64, price int64, stock int, pairs ...string) models.Product {
	var chars models.Characteristics
	for i := 0; i+1 < len(pairs); i += 2 {
		chars.Set(pairs[i], models.StringValue(pairs[i+1]))
	}
	return models.Product{
		Name:            name,
		Price:           decimal.NewFromInt(price),
		CategoryID:      categoryID,
		Unit:            "шт",
		Stock:           stock,
		Characteristics: chars,
	}
}

func intPtr(v int) *int { return &v }
