package db

import (
	"log"
	"time"

	"github.com/quickai-hq/quickai-api/internal/config"
	"github.com/quickai-hq/quickai-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// Migrate runs AutoMigrate plus the raw fixups AutoMigrate cannot express.
// Shared with the sqlite-backed tests.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Business{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	// SKU uniqueness is per business and only for products that have one.
	// The partial index closes the check-then-insert race on concurrent creates.
	return db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_products_business_sku
        ON products (business_id, sku)
        WHERE sku <> ''
    `).Error
}
