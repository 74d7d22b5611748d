package database

import (
	"context"
	"path/filepath"
	"testing"

	"trivia-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "trivia.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestAutoMigrateAndSeed(t *testing.T) {
	db := openSQLite(t)
	require.NoError(t, AutoMigrate(db))

	inserted, err := SeedCategories(db)
	require.NoError(t, err)
	assert.Equal(t, len(models.DefaultCategories), inserted)

	var categories []models.Category
	require.NoError(t, db.Order("id ASC").Find(&categories).Error)
	require.Len(t, categories, len(models.DefaultCategories))
	assert.Equal(t, "Science", categories[0].Type)

	again, err := SeedCategories(db)
	require.NoError(t, err)
	assert.Zero(t, again, "seeding a populated table must be a no-op")
}

func TestPing(t *testing.T) {
	db := openSQLite(t)
	assert.NoError(t, Ping(context.Background(), db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	assert.Error(t, Ping(context.Background(), db))
}
