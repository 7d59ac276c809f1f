package db

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// The following blank imports register the sqlite3 driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/booklyhq/bookly/internal/models"
)

// ConnectAndMigrate opens (or creates) the local database file and brings the
// schema up to date. By default the schema comes from AutoMigrate; set
// MIGRATIONS=1 to run the versioned SQL files in ./migrations instead.
func ConnectAndMigrate(path string) (*gorm.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("DATABASE_PATH est vide, vérifiez la configuration de l'environnement")
	}
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}
	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	// Basic connectivity test
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	if v := strings.ToLower(os.Getenv("MIGRATIONS")); v == "1" || v == "true" || v == "yes" {
		if err := runSQLMigrations(path); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		modelsToMigrate := []interface{}{
			&models.BusinessProfile{}, &models.Product{}, &models.Order{}, &models.OrderItem{}, &models.Expense{}, &models.Customer{},
		}
		for _, m := range modelsToMigrate {
			if migErr := db.AutoMigrate(m); migErr != nil {
				return nil, fmt.Errorf("automigrate %T: %w", m, migErr)
			}
		}
	}

	// sanity check: ensure required core tables exist
	for _, table := range []string{"business_profiles", "orders", "products"} {
		if !db.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}
	// Seeding only when explicitly requested (e.g. development) via DB_SEED=1|true
	if v := strings.ToLower(os.Getenv("DB_SEED")); v == "1" || v == "true" || v == "yes" {
		seed(db)
	}
	return db, nil
}

func seed(db *gorm.DB) {
	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count > 0 {
		return
	}
	products := []models.Product{
		{ID: uuid.NewString(), Name: "Ankara Heels Red", CostPrice: 9000, SellingPrice: 18000, Stock: 8, LowStockThreshold: 3},
		{ID: uuid.NewString(), Name: "Native Cap", CostPrice: 2500, SellingPrice: 6500, Stock: 20, LowStockThreshold: 5},
		{ID: uuid.NewString(), Name: "Agbada Classic Blue", CostPrice: 15000, SellingPrice: 35000, Stock: 4, LowStockThreshold: 2},
	}
	for _, p := range products {
		db.Create(&p)
	}
	now := time.Now()
	orders := []models.Order{
		{
			ID: uuid.NewString(), CustomerName: "Chioma", Total: 35000, Date: now.AddDate(0, 0, -2),
			Status: models.StatusPaid, Source: models.SourceWhatsApp, PaymentMethod: models.PayTransfer,
			Items: []models.OrderItem{{ID: uuid.NewString(), ProductID: products[2].ID, Name: "Agbada Classic Blue", Quantity: 1, Price: 35000}},
		},
		{
			ID: uuid.NewString(), CustomerName: "Emeka", Total: 6500, Date: now.AddDate(0, 0, -1),
			Status: models.StatusPending, Source: models.SourceInstagram, PaymentMethod: models.PayCash,
			Items: []models.OrderItem{{ID: uuid.NewString(), ProductID: products[1].ID, Name: "Native Cap", Quantity: 1, Price: 6500}},
		},
	}
	for _, o := range orders {
		db.Create(&o)
	}
	expenses := []models.Expense{
		{ID: uuid.NewString(), Category: "Data", Amount: 5000, Date: now.AddDate(0, 0, -3), Note: "Monthly internet bundle"},
		{ID: uuid.NewString(), Category: "Transport", Amount: 3500, Date: now.AddDate(0, 0, -1), Note: "Dispatch to Surulere"},
	}
	for _, e := range expenses {
		db.Create(&e)
	}
}

// runSQLMigrations executes migrations in ./migrations using golang-migrate file source.
func runSQLMigrations(path string) error {
	m, err := migrate.New("file://migrations", "sqlite3://"+path)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
