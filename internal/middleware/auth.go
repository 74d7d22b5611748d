package middleware

import (
	"errors"
	"net/http"

	"trivia-api/internal/auth"
	"trivia-api/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ClaimsKey is the gin context key holding the verified *auth.Claims.
const ClaimsKey = "claims"

// RequiresAuth verifies the bearer token and requires permission in its
// claims before the handler runs.
func RequiresAuth(verifier auth.Verifier, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		claims, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		if err := auth.CheckPermission(claims, permission); err != nil {
			abortUnauthorized(c, err)
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by RequiresAuth.
func ClaimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

func abortUnauthorized(c *gin.Context, err error) {
	code := auth.CodeMalformedToken
	message := "Unauthorized"
	var authErr *auth.Error
	if errors.As(err, &authErr) {
		code = authErr.Code
		message = authErr.Description
	}
	logger.Warn(c.Request.Context(), "authorization failed",
		zap.String("code", code),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   http.StatusUnauthorized,
		"message": message,
		"code":    code,
	})
}
