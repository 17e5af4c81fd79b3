package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Joshtri/SIMTernakAyam-API-sub000/models"
)

// setupTestDB opens an in-memory SQLite database with the full schema.
// The pool is pinned to one connection so every query sees the same
// in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_loc=auto"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, db.AutoMigrate(models.AllModels()...))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// date builds a calendar date in local time, matching ledger date math.
func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// fixedClock pins a service's notion of now for deterministic
// future-date checks.
func fixedClock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}

func createEnclosure(t *testing.T, db *gorm.DB, code string, capacity int, region *string) *models.Enclosure {
	t.Helper()
	enclosure := &models.Enclosure{
		EnclosureCode: code,
		EnclosureName: "Kandang " + code,
		Capacity:      capacity,
		Region:        region,
	}
	require.NoError(t, db.Create(enclosure).Error)
	return enclosure
}

func createBatch(t *testing.T, db *gorm.DB, enclosureID uint, entryDate time.Time, quantity int, leftover bool) *models.Batch {
	t.Helper()
	batch := &models.Batch{
		EnclosureID:   enclosureID,
		EntryDate:     models.DateOnly(entryDate),
		EntryQuantity: quantity,
		Leftover:      leftover,
	}
	require.NoError(t, db.Create(batch).Error)
	return batch
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		FullName: "Test " + username,
		Role:     "operator",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }
