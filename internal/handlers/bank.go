package handlers

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"trivia-api/internal/apperr"
	"trivia-api/internal/logger"
	"trivia-api/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxImportSize = 8 << 20

var csvHeader = []string{"category", "question", "answer", "difficulty"}

type BankHandler struct {
	questions *services.QuestionService
}

func NewBankHandler(questions *services.QuestionService) *BankHandler {
	return &BankHandler{questions: questions}
}

type ImportResponse struct {
	Success  bool `json:"success" example:"true"`
	Imported int  `json:"imported" example:"12"`
}

// ExportBank godoc
// @Summary      Export every question grouped by category
// @Tags         questions
// @Produce      json
// @Produce      text/csv
// @Security     BearerAuth
// @Param        format query string false "json (default) or csv"
// @Success      200 {object} services.Bank
// @Failure      401 {object} AuthErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /questions/export [get]
func (h *BankHandler) ExportBank(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", "json"))
	if format != "json" && format != "csv" {
		writeError(c, apperr.Validation("format", "must be json or csv"))
		return
	}

	bank, err := h.questions.ExportBank(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	if format == "csv" {
		var buf bytes.Buffer
		if err := writeBankCSV(&buf, bank); err != nil {
			writeError(c, apperr.Unprocessable(err, "encode csv"))
			return
		}
		c.Header("Content-Disposition", `attachment; filename="trivia.csv"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
		return
	}

	c.Header("Content-Disposition", `attachment; filename="trivia.json"`)
	c.JSON(http.StatusOK, bank)
}

// ImportBank godoc
// @Summary      Import questions from a JSON or CSV bank file
// @Description  Categories are matched by label and created when missing. The import is all or nothing.
// @Tags         questions
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "Bank file (.json or .csv)"
// @Success      200 {object} ImportResponse
// @Failure      401 {object} AuthErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /questions/import [post]
func (h *BankHandler) ImportBank(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		writeError(c, apperr.Wrap(err, apperr.KindValidation, "file is required"))
		return
	}
	defer file.Close()

	body, err := io.ReadAll(io.LimitReader(file, maxImportSize+1))
	if err != nil {
		writeError(c, apperr.Wrap(err, apperr.KindValidation, "cannot read file"))
		return
	}
	if len(body) > maxImportSize {
		writeError(c, apperr.New(apperr.KindValidation, "file exceeds the import size limit"))
		return
	}

	var bank services.Bank
	if strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		bank, err = parseBankCSV(body)
	} else {
		err = json.Unmarshal(body, &bank)
	}
	if err != nil {
		writeError(c, apperr.Wrap(err, apperr.KindValidation, "malformed bank file"))
		return
	}

	count, err := h.questions.ImportBank(c.Request.Context(), bank)
	if err != nil {
		writeError(c, err)
		return
	}
	logger.Info(c.Request.Context(), "bank imported", zap.Int("questions", count), actor(c))
	c.JSON(http.StatusOK, ImportResponse{Success: true, Imported: count})
}

func writeBankCSV(w io.Writer, bank *services.Bank) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, category := range bank.Categories {
		for _, q := range category.Questions {
			row := []string{category.Type, q.Question, q.Answer, strconv.Itoa(q.Difficulty)}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func parseBankCSV(data []byte) (services.Bank, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = len(csvHeader)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return services.Bank{}, fmt.Errorf("invalid CSV: %w", err)
	}
	if len(records) < 1 {
		return services.Bank{}, fmt.Errorf("CSV must have a header row")
	}
	for i, col := range csvHeader {
		if !strings.EqualFold(strings.TrimSpace(records[0][i]), col) {
			return services.Bank{}, fmt.Errorf("CSV header must be %s", strings.Join(csvHeader, ","))
		}
	}

	index := make(map[string]int)
	var bank services.Bank
	for line, row := range records[1:] {
		label := strings.TrimSpace(row[0])
		difficulty, err := strconv.Atoi(strings.TrimSpace(row[3]))
		if err != nil {
			return services.Bank{}, fmt.Errorf("row %d: difficulty %q is not an integer", line+2, row[3])
		}

		pos, ok := index[label]
		if !ok {
			pos = len(bank.Categories)
			index[label] = pos
			bank.Categories = append(bank.Categories, services.BankCategory{Type: label})
		}
		bank.Categories[pos].Questions = append(bank.Categories[pos].Questions, services.BankQuestion{
			Question:   row[1],
			Answer:     row[2],
			Difficulty: difficulty,
		})
	}
	return bank, nil
}
