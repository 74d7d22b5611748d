package services

import (
	"testing"

	"trivia-api/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionInputValidate(t *testing.T) {
	cases := []struct {
		name    string
		input   QuestionInput
		message string
	}{
		{name: "valid", input: QuestionInput{Question: "q", Answer: "a", Category: 2}},
		{name: "difficulty optional", input: QuestionInput{Question: "q", Answer: "a", Category: 2, Difficulty: 0}},
		{name: "whitespace question", input: QuestionInput{Question: "\t ", Answer: "a", Category: 2}, message: "question is required"},
		{name: "empty answer", input: QuestionInput{Question: "q", Category: 2}, message: "answer is required"},
		{name: "zero category", input: QuestionInput{Question: "q", Answer: "a"}, message: "category is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.input.Validate()
			if tc.message == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.KindValidation))
			assert.Equal(t, tc.message, err.Error())
		})
	}
}
