package services

import (
	"context"
	"math/rand"

	"trivia-api/internal/apperr"
	"trivia-api/internal/models"

	"gorm.io/gorm"
)

// AllCategories is the category id that selects every question.
const AllCategories uint = 0

type QuizService struct {
	db      *gorm.DB
	shuffle func(n int, swap func(i, j int))
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{db: db, shuffle: rand.Shuffle}
}

// DrawQuestion picks a uniformly random question from the category scope that
// is not in previous. It returns nil when every question in scope was seen.
func (s *QuizService) DrawQuestion(ctx context.Context, categoryID uint, previous []uint) (*models.Question, error) {
	query := s.db.WithContext(ctx).Order("id ASC")
	if categoryID != AllCategories {
		query = query.Where("category = ?", categoryID)
	}

	var questions []models.Question
	if err := query.Find(&questions).Error; err != nil {
		return nil, apperr.Unprocessable(err, "load quiz questions")
	}

	candidates := unseen(questions, previous)
	if len(candidates) == 0 {
		return nil, nil
	}
	s.shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	return &candidates[0], nil
}

func unseen(questions []models.Question, previous []uint) []models.Question {
	seen := make(map[uint]struct{}, len(previous))
	for _, id := range previous {
		seen[id] = struct{}{}
	}
	result := make([]models.Question, 0, len(questions))
	for _, q := range questions {
		if _, ok := seen[q.ID]; !ok {
			result = append(result, q)
		}
	}
	return result
}
