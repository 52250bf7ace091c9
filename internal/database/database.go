package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/dhruvil1809/ecommerce-backend/internal/configs"
	"github.com/dhruvil1809/ecommerce-backend/internal/models"
)

type Database struct {
	DB     *gorm.DB
	config *configs.Config
}

func Connect(cfg *configs.Config) (*Database, error) {
	db, err := gorm.Open(mysql.Open(cfg.SQLDSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if cfg.DB.Migrate {
		log.Println("Running database migrations...")
		if err := db.AutoMigrate(models.All()...); err != nil {
			return nil, fmt.Errorf("database migration failed: %w", err)
		}
	}

	log.Println("Database connection successfully opened.")
	return &Database{DB: db, config: cfg}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *Database) HealthCheck(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
	}
	return sqlDB.PingContext(ctx)
}
