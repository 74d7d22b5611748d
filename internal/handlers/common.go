package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"trivia-api/internal/apperr"
	"trivia-api/internal/logger"
	"trivia-api/internal/middleware"
	"trivia-api/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   int    `json:"error" example:"422"`
	Message string `json:"message" example:"Unprocessable Entity"`
}

type AuthErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   int    `json:"error" example:"401"`
	Message string `json:"message" example:"Permission not found."`
	Code    string `json:"code" example:"missing_permission"`
}

type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

// Type aliases so swag can resolve models in annotations.
type Question = models.Question
type Category = models.Category

func writeError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	var appErr *apperr.Error
	internal := kind == 0 || apperr.Is(err, apperr.KindUnprocessable) && errors.As(err, &appErr) && appErr.Err != nil
	if kind == 0 {
		kind = apperr.KindUnprocessable
	}

	ctx := c.Request.Context()
	if internal {
		logger.Error(ctx, "request failed", zap.String("path", c.FullPath()), zap.Error(err))
	} else {
		logger.Debug(ctx, "request rejected", zap.String("path", c.FullPath()), zap.Error(err))
	}

	status := kind.HTTPStatus()
	c.AbortWithStatusJSON(status, ErrorResponse{
		Success: false,
		Error:   status,
		Message: kind.Message(),
	})
}

// parseID reads a positive integer path parameter. Anything else is reported
// as a missing resource, the same as an unmatched route.
func parseID(c *gin.Context, name, resource string) (uint, error) {
	id, err := parseUintParam(c, name, resource)
	if err != nil || id == 0 {
		return 0, apperr.NotFoundError(resource)
	}
	return id, nil
}

// parseUintParam is parseID that also accepts zero.
func parseUintParam(c *gin.Context, name, resource string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, apperr.NotFoundError(resource)
	}
	return uint(id), nil
}

// actor names the token subject that authorized the request.
func actor(c *gin.Context) zap.Field {
	if claims, ok := middleware.ClaimsFrom(c); ok {
		return zap.String("subject", claims.Subject)
	}
	return zap.Skip()
}

// flexInt accepts a JSON number or a numeric string. null leaves it unset.
type flexInt struct {
	Value int64
	Set   bool
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = flexInt{}
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("%q is not an integer", raw)
	}
	*f = flexInt{Value: v, Set: true}
	return nil
}

func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperr.Wrap(err, apperr.KindValidation, "invalid request body")
	}
	return nil
}
