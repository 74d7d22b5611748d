package handlers

import (
	"net/http"

	"trivia-api/internal/apperr"
	"trivia-api/internal/services"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quiz *services.QuizService
}

func NewQuizHandler(quiz *services.QuizService) *QuizHandler {
	return &QuizHandler{quiz: quiz}
}

type QuizCategory struct {
	ID   flexInt `json:"id" swaggertype:"integer" example:"0"`
	Type string  `json:"type,omitempty" example:"click"`
}

type QuizRequest struct {
	QuizCategory      *QuizCategory `json:"quiz_category"`
	PreviousQuestions []uint        `json:"previous_questions" example:"4,9"`
}

type QuizResponse struct {
	Success  bool      `json:"success" example:"true"`
	Question *Question `json:"question"`
}

// PlayQuiz godoc
// @Summary      Draw a random question not yet seen in this quiz
// @Description  Category id 0 draws from every category. question is null once the scope is exhausted.
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Param        request body QuizRequest true "Quiz state"
// @Success      200 {object} QuizResponse
// @Failure      422 {object} ErrorResponse
// @Router       /quizzes [post]
func (h *QuizHandler) PlayQuiz(c *gin.Context) {
	var req QuizRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	if req.QuizCategory == nil || !req.QuizCategory.ID.Set {
		writeError(c, apperr.Validation("quiz_category", "is required"))
		return
	}
	if req.QuizCategory.ID.Value < 0 {
		writeError(c, apperr.Validation("quiz_category.id", "must not be negative"))
		return
	}

	question, err := h.quiz.DrawQuestion(c.Request.Context(), uint(req.QuizCategory.ID.Value), req.PreviousQuestions)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, QuizResponse{Success: true, Question: question})
}
