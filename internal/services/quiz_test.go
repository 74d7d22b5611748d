package services

import (
	"testing"

	"trivia-api/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityShuffle(int, func(i, j int)) {}

func TestDrawQuestionFromCategory(t *testing.T) {
	db := newTestDB(t)
	science := seedQuestions(t, db, 1, 3)
	seedQuestions(t, db, 2, 2)
	svc := NewQuizService(db)

	ids := map[uint]bool{}
	for _, q := range science {
		ids[q.ID] = true
	}

	for i := 0; i < 20; i++ {
		q, err := svc.DrawQuestion(ctx, 1, []uint{science[0].ID})
		require.NoError(t, err)
		require.NotNil(t, q)
		assert.Equal(t, uint(1), q.Category)
		assert.True(t, ids[q.ID])
		assert.NotEqual(t, science[0].ID, q.ID)
	}
}

func TestDrawQuestionAllCategories(t *testing.T) {
	db := newTestDB(t)
	seedQuestions(t, db, 1, 1)
	seedQuestions(t, db, 5, 1)
	svc := &QuizService{db: db, shuffle: identityShuffle}

	first, err := svc.DrawQuestion(ctx, AllCategories, nil)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := svc.DrawQuestion(ctx, AllCategories, []uint{first.ID})
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.NotEqual(t, first.ID, second.ID)

	none, err := svc.DrawQuestion(ctx, AllCategories, []uint{first.ID, second.ID})
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestDrawQuestionExhaustedOrEmpty(t *testing.T) {
	db := newTestDB(t)
	questions := seedQuestions(t, db, 3, 2)
	svc := NewQuizService(db)

	q, err := svc.DrawQuestion(ctx, 3, []uint{questions[0].ID, questions[1].ID})
	require.NoError(t, err)
	assert.Nil(t, q)

	q, err = svc.DrawQuestion(ctx, 6, nil)
	require.NoError(t, err)
	assert.Nil(t, q, "a category without questions has nothing to draw")

	q, err = svc.DrawQuestion(ctx, 404, nil)
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestDrawQuestionUsesShuffle(t *testing.T) {
	db := newTestDB(t)
	questions := seedQuestions(t, db, 2, 4)
	reverse := func(n int, swap func(i, j int)) {
		for i := 0; i < n/2; i++ {
			swap(i, n-1-i)
		}
	}
	svc := &QuizService{db: db, shuffle: reverse}

	q, err := svc.DrawQuestion(ctx, 2, nil)
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, questions[3].ID, q.ID)
}

func TestDrawQuestionPersistenceFailure(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)
	closeDB(t, db)

	_, err := svc.DrawQuestion(ctx, AllCategories, nil)
	assert.True(t, apperr.Is(err, apperr.KindUnprocessable))
}
