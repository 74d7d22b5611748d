package handlers

import (
	"net/http"

	"trivia-api/internal/services"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categories *services.CategoryService
	questions  *services.QuestionService
}

func NewCategoryHandler(categories *services.CategoryService, questions *services.QuestionService) *CategoryHandler {
	return &CategoryHandler{categories: categories, questions: questions}
}

type CategoriesResponse struct {
	Success    bool            `json:"success" example:"true"`
	Categories map[uint]string `json:"categories"`
}

type CategoryQuestionsResponse struct {
	Success         bool       `json:"success" example:"true"`
	Questions       []Question `json:"questions"`
	TotalQuestions  int        `json:"totalQuestions" example:"3"`
	CurrentCategory uint       `json:"currentCategory" example:"1"`
}

// ListCategories godoc
// @Summary      List categories as an id to label map
// @Tags         categories
// @Produce      json
// @Success      200 {object} CategoriesResponse
// @Failure      422 {object} ErrorResponse
// @Router       /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categories.CategoryMap(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, CategoriesResponse{Success: true, Categories: categories})
}

// ListCategoryQuestions godoc
// @Summary      List the questions of a category
// @Tags         categories
// @Produce      json
// @Param        id path int true "Category ID"
// @Success      200 {object} CategoryQuestionsResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /categories/{id}/questions [get]
func (h *CategoryHandler) ListCategoryQuestions(c *gin.Context) {
	id, err := parseUintParam(c, "id", "category")
	if err != nil {
		writeError(c, err)
		return
	}

	questions, err := h.questions.ListByCategory(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, CategoryQuestionsResponse{
		Success:         true,
		Questions:       questions,
		TotalQuestions:  len(questions),
		CurrentCategory: id,
	})
}
