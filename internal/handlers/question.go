package handlers

import (
	"net/http"
	"strconv"

	"trivia-api/internal/apperr"
	"trivia-api/internal/logger"
	"trivia-api/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type QuestionHandler struct {
	questions  *services.QuestionService
	categories *services.CategoryService
}

func NewQuestionHandler(questions *services.QuestionService, categories *services.CategoryService) *QuestionHandler {
	return &QuestionHandler{questions: questions, categories: categories}
}

// QuestionRequest is the body of POST /questions and PATCH /questions/{id}.
// A body carrying searchTerm is a search, not a create.
type QuestionRequest struct {
	Question   *string `json:"question" example:"What is the largest planet?"`
	Answer     *string `json:"answer" example:"Jupiter"`
	Category   flexInt `json:"category" swaggertype:"integer" example:"1"`
	Difficulty flexInt `json:"difficulty" swaggertype:"integer" example:"2"`
	SearchTerm *string `json:"searchTerm,omitempty" example:"planet"`
}

func (r QuestionRequest) input() (services.QuestionInput, error) {
	if r.Question == nil {
		return services.QuestionInput{}, apperr.Validation("question", "is required")
	}
	if r.Answer == nil {
		return services.QuestionInput{}, apperr.Validation("answer", "is required")
	}
	if !r.Category.Set || r.Category.Value < 1 {
		return services.QuestionInput{}, apperr.Validation("category", "must be a positive integer")
	}
	if !r.Difficulty.Set {
		return services.QuestionInput{}, apperr.Validation("difficulty", "is required")
	}
	return services.QuestionInput{
		Question:   *r.Question,
		Answer:     *r.Answer,
		Category:   uint(r.Category.Value),
		Difficulty: int(r.Difficulty.Value),
	}, nil
}

type QuestionListResponse struct {
	Success        bool            `json:"success" example:"true"`
	Questions      []Question      `json:"questions"`
	TotalQuestions int             `json:"totalQuestions" example:"19"`
	Categories     map[uint]string `json:"categories"`
}

type SearchResponse struct {
	Success        bool       `json:"success" example:"true"`
	Questions      []Question `json:"questions"`
	TotalQuestions int        `json:"totalQuestions" example:"1"`
}

type QuestionResponse struct {
	Success  bool     `json:"success" example:"true"`
	Question Question `json:"question"`
}

type CreatedResponse struct {
	Success bool `json:"success" example:"true"`
	Created uint `json:"created" example:"24"`
}

type UpdatedResponse struct {
	Success bool `json:"success" example:"true"`
	Updated uint `json:"updated" example:"24"`
}

type DeletedResponse struct {
	Success bool `json:"success" example:"true"`
	Deleted uint `json:"deleted" example:"24"`
}

// ListQuestions godoc
// @Summary      List questions, ten per page
// @Tags         questions
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "1-based page number"
// @Success      200 {object} QuestionListResponse
// @Failure      401 {object} AuthErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /questions [get]
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}

	questions, total, err := h.questions.ListPage(c.Request.Context(), page)
	if err != nil {
		writeError(c, err)
		return
	}
	categories, err := h.categories.CategoryMap(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, QuestionListResponse{
		Success:        true,
		Questions:      questions,
		TotalQuestions: total,
		Categories:     categories,
	})
}

// CreateOrSearchQuestions godoc
// @Summary      Create a question, or search when searchTerm is given
// @Description  A body with searchTerm returns a SearchResponse instead.
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body QuestionRequest true "Question data or search term"
// @Success      200 {object} CreatedResponse
// @Failure      401 {object} AuthErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /questions [post]
func (h *QuestionHandler) CreateOrSearchQuestions(c *gin.Context) {
	var req QuestionRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}

	if req.SearchTerm != nil {
		questions, err := h.questions.Search(c.Request.Context(), *req.SearchTerm)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, SearchResponse{
			Success:        true,
			Questions:      questions,
			TotalQuestions: len(questions),
		})
		return
	}

	input, err := req.input()
	if err != nil {
		writeError(c, err)
		return
	}
	question, err := h.questions.CreateQuestion(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	logger.Info(c.Request.Context(), "question created", zap.Uint("id", question.ID), actor(c))
	c.JSON(http.StatusOK, CreatedResponse{Success: true, Created: question.ID})
}

// GetQuestion godoc
// @Summary      Get a question
// @Tags         questions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Question ID"
// @Success      200 {object} QuestionResponse
// @Failure      401 {object} AuthErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /questions/{id} [get]
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, err := parseID(c, "id", "question")
	if err != nil {
		writeError(c, err)
		return
	}

	question, err := h.questions.GetQuestion(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, QuestionResponse{Success: true, Question: *question})
}

// UpdateQuestion godoc
// @Summary      Replace a question
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Question ID"
// @Param        request body QuestionRequest true "Question data"
// @Success      200 {object} UpdatedResponse
// @Failure      401 {object} AuthErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /questions/{id} [patch]
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	id, err := parseID(c, "id", "question")
	if err != nil {
		writeError(c, err)
		return
	}

	var req QuestionRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	input, err := req.input()
	if err != nil {
		writeError(c, err)
		return
	}

	question, err := h.questions.UpdateQuestion(c.Request.Context(), id, input)
	if err != nil {
		writeError(c, err)
		return
	}
	logger.Info(c.Request.Context(), "question updated", zap.Uint("id", question.ID), actor(c))
	c.JSON(http.StatusOK, UpdatedResponse{Success: true, Updated: question.ID})
}

// DeleteQuestion godoc
// @Summary      Delete a question
// @Tags         questions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Question ID"
// @Success      200 {object} DeletedResponse
// @Failure      401 {object} AuthErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id, err := parseID(c, "id", "question")
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.questions.DeleteQuestion(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	logger.Info(c.Request.Context(), "question deleted", zap.Uint("id", id), actor(c))
	c.JSON(http.StatusOK, DeletedResponse{Success: true, Deleted: id})
}
