package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindHTTPStatus(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusUnprocessableEntity},
		{KindUnprocessable, http.StatusUnprocessableEntity},
		{KindNotFound, http.StatusNotFound},
		{KindMethodNotAllowed, http.StatusMethodNotAllowed},
		{Kind(99), http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.kind.HTTPStatus(), "kind %d", tc.kind)
	}
}

func TestKindOfWrappedError(t *testing.T) {
	base := NotFoundError("question")
	wrapped := fmt.Errorf("lookup: %w", base)

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.True(t, Is(wrapped, KindNotFound))
	assert.False(t, Is(wrapped, KindValidation))
	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
	assert.False(t, Is(nil, KindNotFound))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Unprocessable(cause, "insert question")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "insert question: connection reset", err.Error())
	assert.Nil(t, Wrap(nil, KindUnprocessable, "ignored"))
}

func TestErrorMessageFallback(t *testing.T) {
	assert.Equal(t, "Not found", (&Error{Kind: KindNotFound}).Error())
	assert.Equal(t, "question not found", NotFoundError("question").Error())
	assert.Equal(t, "answer is required", Validation("answer", "is required").Error())
}
