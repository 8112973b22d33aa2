// Package testutil wires the global database handle to an in-memory sqlite
// instance so service and handler tests run without a Postgres server.
package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jordisipkens/spiral-race/database"
	"github.com/jordisipkens/spiral-race/models"
)

func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// A fresh connection would mean a fresh empty :memory: database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Tile{},
		&models.Team{},
		&models.Submission{},
		&models.Progress{},
		&models.Setting{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		_ = sqlDB.Close()
	})

	return db
}

func CreateTeam(t *testing.T, name, slug string) models.Team {
	t.Helper()
	team := models.Team{Name: name, Slug: slug}
	if err := database.DB.Create(&team).Error; err != nil {
		t.Fatalf("failed to create team: %v", err)
	}
	return team
}

func CreateTile(t *testing.T, tile models.Tile) models.Tile {
	t.Helper()
	if tile.RequiredSubmissions == 0 {
		tile.RequiredSubmissions = 1
	}
	if err := database.DB.Create(&tile).Error; err != nil {
		t.Fatalf("failed to create tile: %v", err)
	}
	return tile
}

func CreateSubmission(t *testing.T, teamID, tileID uint32) models.Submission {
	t.Helper()
	sub := models.Submission{
		TeamID:   teamID,
		TileID:   tileID,
		ImageURL: "https://storage.example/proof.png",
		Status:   models.SubmissionPending,
	}
	if err := database.DB.Create(&sub).Error; err != nil {
		t.Fatalf("failed to create submission: %v", err)
	}
	return sub
}
