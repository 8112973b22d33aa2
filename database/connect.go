package database

import (
	"log/slog"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jordisipkens/spiral-race/models"
)

var DB *gorm.DB

func Connect(dsn string) {
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		slog.Error("failed to get underlying sql.DB", "error", err)
		os.Exit(1)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	// Hosted Postgres closes idle connections; recycle ours before that.
	sqlDB.SetConnMaxLifetime(time.Hour)

	slog.Info("database connection established")
}

func MigrateTables() {
	err := DB.AutoMigrate(
		&models.Tile{},
		&models.Team{},
		&models.Submission{},
		&models.Progress{},
		&models.Setting{},
	)
	if err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}
	slog.Info("database migration completed")
}
