package services

import (
	"context"

	"trivia-api/internal/apperr"
	"trivia-api/internal/models"

	"gorm.io/gorm"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, apperr.Unprocessable(err, "list categories")
	}
	return categories, nil
}

// CategoryMap returns every category as an id to label map.
func (s *CategoryService) CategoryMap(ctx context.Context) (map[uint]string, error) {
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	result := make(map[uint]string, len(categories))
	for _, c := range categories {
		result[c.ID] = c.Type
	}
	return result, nil
}
