package services

import (
	"context"
	"fmt"
	"strings"

	"trivia-api/internal/apperr"
	"trivia-api/internal/models"

	"gorm.io/gorm"
)

type BankQuestion struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty int    `json:"difficulty"`
}

type BankCategory struct {
	Type      string         `json:"type"`
	Questions []BankQuestion `json:"questions"`
}

// Bank is the portable form of the question store, grouped by category label.
type Bank struct {
	Categories []BankCategory `json:"categories"`
}

// ExportBank groups every question under its category label. Categories
// without questions are included so an import recreates them.
func (s *QuestionService) ExportBank(ctx context.Context) (*Bank, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, apperr.Unprocessable(err, "export categories")
	}
	questions, err := s.ListQuestions(ctx)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[uint][]BankQuestion, len(categories))
	for _, q := range questions {
		byCategory[q.Category] = append(byCategory[q.Category], BankQuestion{
			Question:   q.Question,
			Answer:     q.Answer,
			Difficulty: q.Difficulty,
		})
	}

	bank := &Bank{Categories: make([]BankCategory, 0, len(categories))}
	for _, c := range categories {
		questions := byCategory[c.ID]
		if questions == nil {
			questions = []BankQuestion{}
		}
		bank.Categories = append(bank.Categories, BankCategory{
			Type:      c.Type,
			Questions: questions,
		})
	}
	return bank, nil
}

// ImportBank inserts every question of bank in a single transaction, creating
// categories that do not exist yet. It returns the number of questions added.
func (s *QuestionService) ImportBank(ctx context.Context, bank Bank) (int, error) {
	imported := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, bc := range bank.Categories {
			label := strings.TrimSpace(bc.Type)
			if label == "" {
				return apperr.Validation("category type", "is required")
			}

			var category models.Category
			result := tx.Where("type = ?", label).Limit(1).Find(&category)
			if result.Error != nil {
				return apperr.Unprocessable(result.Error, "load category")
			}
			if result.RowsAffected == 0 {
				category = models.Category{Type: label}
				if err := tx.Create(&category).Error; err != nil {
					return apperr.Unprocessable(err, "create category")
				}
			}

			for i, bq := range bc.Questions {
				input := QuestionInput{
					Question:   bq.Question,
					Answer:     bq.Answer,
					Category:   category.ID,
					Difficulty: bq.Difficulty,
				}
				if err := input.Validate(); err != nil {
					return apperr.Wrap(err, apperr.KindValidation, fmt.Sprintf("%s question %d", label, i+1))
				}
				question := models.Question{
					Question:   input.Question,
					Answer:     input.Answer,
					Category:   input.Category,
					Difficulty: input.Difficulty,
				}
				if err := tx.Create(&question).Error; err != nil {
					return apperr.Unprocessable(err, "insert question")
				}
				imported++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return imported, nil
}
