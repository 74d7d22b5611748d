package services

import (
	"math"
	"testing"

	"trivia-api/internal/apperr"
	"trivia-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23}

	cases := []struct {
		name string
		page int
		want []int
	}{
		{name: "first page", page: 1, want: items[0:10]},
		{name: "second page", page: 2, want: items[10:20]},
		{name: "partial last page", page: 3, want: items[20:23]},
		{name: "past the end", page: 4, want: []int{}},
		{name: "zero page", page: 0, want: []int{}},
		{name: "huge page", page: 1_000_000_000_000_000_000, want: []int{}},
		{name: "max int page", page: math.MaxInt, want: []int{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Paginate(items, tc.page, 10))
		})
	}
}

func TestListPageCoversEveryQuestionOnce(t *testing.T) {
	db := newTestDB(t)
	seedQuestions(t, db, 1, 13)
	seedQuestions(t, db, 2, 12)
	svc := NewQuestionService(db)

	seen := map[uint]int{}
	page := 1
	for {
		questions, total, err := svc.ListPage(ctx, page)
		require.NoError(t, err)
		assert.Equal(t, 25, total)
		assert.LessOrEqual(t, len(questions), QuestionsPerPage)
		if len(questions) == 0 {
			break
		}
		for _, q := range questions {
			seen[q.ID]++
		}
		page++
	}

	assert.Equal(t, 4, page, "three non-empty pages expected for 25 rows")
	assert.Len(t, seen, 25)
	for id, n := range seen {
		assert.Equal(t, 1, n, "question %d listed %d times", id, n)
	}
}

func TestListPageRejectsNonPositivePage(t *testing.T) {
	svc := NewQuestionService(newTestDB(t))
	_, _, err := svc.ListPage(ctx, 0)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestSearch(t *testing.T) {
	db := newTestDB(t)
	seedQuestions(t, db, 1, 3)
	target := models.Question{Question: "Who painted the Mona Lisa?", Answer: "Leonardo", Category: 2, Difficulty: 2}
	require.NoError(t, db.Create(&target).Error)
	percent := models.Question{Question: "What is 50% of 10?", Answer: "5", Category: 1, Difficulty: 1}
	require.NoError(t, db.Create(&percent).Error)
	svc := NewQuestionService(db)

	got, err := svc.Search(ctx, "mona LISA")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, target.ID, got[0].ID)

	got, err = svc.Search(ctx, "question")
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = svc.Search(ctx, "%")
	require.NoError(t, err)
	require.Len(t, got, 1, "wildcards in the term are matched literally")
	assert.Equal(t, percent.ID, got[0].ID)

	got, err = svc.Search(ctx, "no such text")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	svc := NewQuestionService(newTestDB(t))
	input := QuestionInput{Question: "Test question", Answer: "Test answer", Category: 1, Difficulty: 1}

	created, err := svc.CreateQuestion(ctx, input)
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := svc.GetQuestion(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Question{
		ID:         created.ID,
		Question:   "Test question",
		Answer:     "Test answer",
		Category:   1,
		Difficulty: 1,
	}, *got)
}

func TestCreateValidation(t *testing.T) {
	svc := NewQuestionService(newTestDB(t))

	cases := []struct {
		name  string
		input QuestionInput
		kind  apperr.Kind
	}{
		{name: "blank question", input: QuestionInput{Question: "  ", Answer: "a", Category: 1}, kind: apperr.KindValidation},
		{name: "missing answer", input: QuestionInput{Question: "q", Category: 1}, kind: apperr.KindValidation},
		{name: "missing category", input: QuestionInput{Question: "q", Answer: "a"}, kind: apperr.KindValidation},
		{name: "unknown category", input: QuestionInput{Question: "q", Answer: "a", Category: 99}, kind: apperr.KindUnprocessable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateQuestion(ctx, tc.input)
			require.Error(t, err)
			assert.Equal(t, tc.kind, apperr.KindOf(err))
		})
	}

	count, err := svc.CountQuestions(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestFindQuestionMiss(t *testing.T) {
	svc := NewQuestionService(newTestDB(t))

	_, found, err := svc.FindQuestion(ctx, 42)
	require.NoError(t, err)
	assert.False(t, found)

	_, err = svc.GetQuestion(ctx, 42)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestUpdateQuestion(t *testing.T) {
	db := newTestDB(t)
	existing := seedQuestions(t, db, 1, 1)[0]
	svc := NewQuestionService(db)

	updated, err := svc.UpdateQuestion(ctx, existing.ID, QuestionInput{
		Question: "Updated?", Answer: "Yes", Category: 3, Difficulty: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, updated.ID)

	got, err := svc.GetQuestion(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated?", got.Question)
	assert.Equal(t, "Yes", got.Answer)
	assert.Equal(t, uint(3), got.Category)
	assert.Equal(t, 4, got.Difficulty)

	_, err = svc.UpdateQuestion(ctx, 999, QuestionInput{Question: "q", Answer: "a", Category: 1})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = svc.UpdateQuestion(ctx, existing.ID, QuestionInput{Question: "q", Answer: "a", Category: 77})
	assert.True(t, apperr.Is(err, apperr.KindUnprocessable))
}

func TestDeleteQuestion(t *testing.T) {
	db := newTestDB(t)
	questions := seedQuestions(t, db, 1, 3)
	svc := NewQuestionService(db)

	require.NoError(t, svc.DeleteQuestion(ctx, questions[0].ID))

	_, err := svc.GetQuestion(ctx, questions[0].ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	count, err := svc.CountQuestions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	err = svc.DeleteQuestion(ctx, questions[0].ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestListByCategory(t *testing.T) {
	db := newTestDB(t)
	seedQuestions(t, db, 1, 2)
	seedQuestions(t, db, 4, 3)
	svc := NewQuestionService(db)

	got, err := svc.ListByCategory(ctx, 4)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	for _, q := range got {
		assert.Equal(t, uint(4), q.Category)
	}

	got, err = svc.ListByCategory(ctx, 1000)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPersistenceFailureIsUnprocessable(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuestionService(db)
	closeDB(t, db)

	_, err := svc.ListQuestions(ctx)
	assert.True(t, apperr.Is(err, apperr.KindUnprocessable))

	_, _, err = svc.FindQuestion(ctx, 1)
	assert.True(t, apperr.Is(err, apperr.KindUnprocessable))

	err = svc.DeleteQuestion(ctx, 1)
	assert.True(t, apperr.Is(err, apperr.KindUnprocessable))
}
