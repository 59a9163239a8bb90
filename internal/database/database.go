package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"geobike_backend/internal/config"
	"geobike_backend/internal/models"
	"geobike_backend/pkg/utils"

	_ "github.com/lib/pq" // PostgreSQL driver
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens PostgreSQL through lib/pq and hands the pool to gorm.
// The initial ping is retried with the configured backoff.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	retry := NewRetryPolicy(cfg.MaxRetries, cfg.MaxRetryDelay)
	if err := retry.Do(ctx, "connect", always, func() error { return sqlDB.PingContext(ctx) }); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: NewGormLogger(200 * time.Millisecond).LogMode(logger.Warn),
	})
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	utils.LogInfo("Successfully connected to the database", map[string]interface{}{"host": cfg.Host, "db": cfg.DBName})
	return db, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Account{},
		&models.Customer{},
		&models.Staff{},
		&models.Supplier{},
		&models.Product{},
		&models.Service{},
		&models.Order{},
		&models.OrderLine{},
		&models.Sale{},
		&models.SaleLine{},
		&models.StockMovement{},
	)
	if err != nil {
		return fmt.Errorf("could not migrate schema: %w", err)
	}
	utils.LogInfo("Database schema migrated")
	return nil
}

// SeedAdmin creates the initial administrator if no account uses the email yet.
func SeedAdmin(ctx context.Context, db *gorm.DB, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}
	var count int64
	if err := db.WithContext(ctx).Model(&models.Account{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up admin account: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		account := models.Account{Email: email, PasswordHash: string(hash), Role: models.RoleAdmin, Active: true}
		if err := tx.Create(&account).Error; err != nil {
			return err
		}
		staff := models.Staff{AccountID: account.ID, FirstName: "Administrador", LastName: "GeoBike"}
		if err := tx.Create(&staff).Error; err != nil {
			return err
		}
		utils.LogInfo("Seeded administrator account", map[string]interface{}{"email": email})
		return nil
	})
}

// Close releases the underlying pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
