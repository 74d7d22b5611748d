package services

import (
	"context"
	"strings"

	"trivia-api/internal/apperr"
	"trivia-api/internal/models"

	"gorm.io/gorm"
)

// QuestionsPerPage is the fixed page size of the question listing.
const QuestionsPerPage = 10

type QuestionService struct {
	db *gorm.DB
}

func NewQuestionService(db *gorm.DB) *QuestionService {
	return &QuestionService{db: db}
}

type QuestionInput struct {
	Question   string `validate:"notblank"`
	Answer     string `validate:"notblank"`
	Category   uint   `validate:"required"`
	Difficulty int
}

func (in QuestionInput) Validate() error {
	return validateStruct(in)
}

// ListQuestions loads every question ordered by id.
func (s *QuestionService) ListQuestions(ctx context.Context) ([]models.Question, error) {
	var questions []models.Question
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&questions).Error; err != nil {
		return nil, apperr.Unprocessable(err, "list questions")
	}
	return questions, nil
}

// ListPage returns the requested page of questions and the total number of
// questions. The whole table is loaded and sliced in memory.
func (s *QuestionService) ListPage(ctx context.Context, page int) ([]models.Question, int, error) {
	if page < 1 {
		return nil, 0, apperr.Validation("page", "must be a positive integer")
	}
	questions, err := s.ListQuestions(ctx)
	if err != nil {
		return nil, 0, err
	}
	return Paginate(questions, page, QuestionsPerPage), len(questions), nil
}

// Paginate slices items to the 1-based page. Out-of-range pages yield an
// empty, non-nil slice.
func Paginate[T any](items []T, page, size int) []T {
	if page < 1 || size < 1 {
		return []T{}
	}
	pages := (len(items) + size - 1) / size
	if page > pages {
		return []T{}
	}
	start := (page - 1) * size
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Search matches questions whose text contains term, ignoring case.
func (s *QuestionService) Search(ctx context.Context, term string) ([]models.Question, error) {
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	var questions []models.Question
	err := s.db.WithContext(ctx).
		Where("LOWER(question) LIKE ? ESCAPE '\\'", pattern).
		Order("id ASC").
		Find(&questions).Error
	if err != nil {
		return nil, apperr.Unprocessable(err, "search questions")
	}
	return questions, nil
}

func escapeLike(term string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
}

// FindQuestion looks a question up by id. The boolean reports whether a row
// was found; a miss is not an error.
func (s *QuestionService) FindQuestion(ctx context.Context, id uint) (models.Question, bool, error) {
	var question models.Question
	result := s.db.WithContext(ctx).Limit(1).Find(&question, id)
	if result.Error != nil {
		return models.Question{}, false, apperr.Unprocessable(result.Error, "load question")
	}
	if result.RowsAffected == 0 {
		return models.Question{}, false, nil
	}
	return question, true, nil
}

func (s *QuestionService) GetQuestion(ctx context.Context, id uint) (*models.Question, error) {
	question, found, err := s.FindQuestion(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NotFoundError("question")
	}
	return &question, nil
}

func (s *QuestionService) CreateQuestion(ctx context.Context, input QuestionInput) (*models.Question, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureCategory(ctx, input.Category); err != nil {
		return nil, err
	}

	question := models.Question{
		Question:   input.Question,
		Answer:     input.Answer,
		Category:   input.Category,
		Difficulty: input.Difficulty,
	}
	if err := s.db.WithContext(ctx).Create(&question).Error; err != nil {
		return nil, apperr.Unprocessable(err, "insert question")
	}
	return &question, nil
}

// UpdateQuestion replaces every field of an existing question.
func (s *QuestionService) UpdateQuestion(ctx context.Context, id uint, input QuestionInput) (*models.Question, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	question, found, err := s.FindQuestion(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NotFoundError("question")
	}
	if err := s.ensureCategory(ctx, input.Category); err != nil {
		return nil, err
	}

	question.Question = input.Question
	question.Answer = input.Answer
	question.Category = input.Category
	question.Difficulty = input.Difficulty
	if err := s.db.WithContext(ctx).Save(&question).Error; err != nil {
		return nil, apperr.Unprocessable(err, "update question")
	}
	return &question, nil
}

func (s *QuestionService) DeleteQuestion(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Question{}, id)
	if result.Error != nil {
		return apperr.Unprocessable(result.Error, "delete question")
	}
	if result.RowsAffected == 0 {
		return apperr.NotFoundError("question")
	}
	return nil
}

// ListByCategory returns the questions of one category. An unknown category
// yields an empty list.
func (s *QuestionService) ListByCategory(ctx context.Context, categoryID uint) ([]models.Question, error) {
	var questions []models.Question
	err := s.db.WithContext(ctx).
		Where("category = ?", categoryID).
		Order("id ASC").
		Find(&questions).Error
	if err != nil {
		return nil, apperr.Unprocessable(err, "list questions by category")
	}
	return questions, nil
}

func (s *QuestionService) CountQuestions(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Question{}).Count(&count).Error; err != nil {
		return 0, apperr.Unprocessable(err, "count questions")
	}
	return count, nil
}

func (s *QuestionService) ensureCategory(ctx context.Context, categoryID uint) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", categoryID).Count(&count).Error
	if err != nil {
		return apperr.Unprocessable(err, "check category")
	}
	if count == 0 {
		return apperr.Newf(apperr.KindUnprocessable, "category %d does not exist", categoryID)
	}
	return nil
}
