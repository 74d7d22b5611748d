package services

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"trivia-api/internal/database"
	"trivia-api/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a migrated sqlite database seeded with the default
// categories (ids 1..6).
func newTestDB(t *testing.T) *gorm.DB {
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
	require.NoError(t, database.AutoMigrate(db))
	_, err = database.SeedCategories(db)
	require.NoError(t, err)
	return db
}

func seedQuestions(t *testing.T, db *gorm.DB, category uint, n int) []models.Question {
	t.Helper()
	questions := make([]models.Question, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, models.Question{
			Question:   fmt.Sprintf("Category %d question %d?", category, i),
			Answer:     fmt.Sprintf("answer %d", i),
			Category:   category,
			Difficulty: i%5 + 1,
		})
	}
	require.NoError(t, db.Create(&questions).Error)
	return questions
}

func closeDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

var ctx = context.Background()
