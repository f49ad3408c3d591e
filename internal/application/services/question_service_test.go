package services

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/responder/core/internal/adapters/repository"
	"github.com/responder/core/internal/adapters/storage"
	"github.com/responder/core/internal/domain/entities"
	"github.com/responder/core/internal/infrastructure/logger"
	"github.com/responder/core/internal/infrastructure/metrics"
	"github.com/responder/core/internal/ports"
)

func newTestService(t *testing.T, seed ...entities.Question) (*QuestionService, *metrics.Metrics) {
	t.Helper()

	store := storage.NewMemoryStorage(seed...)
	m := metrics.New()
	return NewQuestionService(repository.NewQuestionRepository(store), store, logger.NewNop(), m), m
}

// failingStorage simulates an unreadable backing document
type failingStorage struct{}

func (failingStorage) Load(context.Context) ([]entities.Question, error) {
	return nil, entities.ErrStorageCorrupted
}

func (failingStorage) Save(context.Context, []entities.Question) error {
	return errors.New("disk full")
}

func (failingStorage) Describe() string { return "failing" }

var _ ports.QuestionStorage = failingStorage{}

func TestQuestionService_GetQuestion(t *testing.T) {
	svc, m := newTestService(t, entities.Question{ID: "Q1", Author: "Jack London", Summary: "What is my name?"})
	ctx := context.Background()

	question, err := svc.GetQuestion(ctx, "Q1")
	require.NoError(t, err)
	assert.Equal(t, "Jack London", question.Author)

	_, err = svc.GetQuestion(ctx, "missing")
	assert.ErrorIs(t, err, entities.ErrQuestionNotFound)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreOperations.WithLabelValues("get_question", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreOperations.WithLabelValues("get_question", "not_found")))
}

func TestQuestionService_CreateQuestion(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateQuestion(ctx, entities.Question{})
	assert.ErrorIs(t, err, entities.ErrQuestionRequired)

	created, err := svc.CreateQuestion(ctx, entities.Question{ID: "Q2", Summary: "Who are you?"})
	require.NoError(t, err)
	assert.Equal(t, "Q2", created.ID)
	assert.Equal(t, []entities.Answer{}, created.Answers)

	_, err = svc.CreateQuestion(ctx, entities.Question{ID: "Q2"})
	assert.ErrorIs(t, err, entities.ErrDuplicateQuestion)

	questions, err := svc.ListQuestions(ctx)
	require.NoError(t, err)
	assert.Len(t, questions, 1)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreOperations.WithLabelValues("add_question", "invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreOperations.WithLabelValues("add_question", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreOperations.WithLabelValues("add_question", "conflict")))
}

func TestQuestionService_GetAnswersSeparatesMissingQuestionFromNoAnswers(t *testing.T) {
	svc, _ := newTestService(t,
		entities.Question{ID: "empty", Answers: []entities.Answer{}},
		entities.Question{ID: "answered", Answers: []entities.Answer{{ID: "A1", Summary: "yes"}}},
	)
	ctx := context.Background()

	answers, err := svc.GetAnswers(ctx, "empty")
	require.NoError(t, err)
	assert.NotNil(t, answers)
	assert.Empty(t, answers)

	answers, err = svc.GetAnswers(ctx, "answered")
	require.NoError(t, err)
	assert.Equal(t, []entities.Answer{{ID: "A1", Summary: "yes"}}, answers)

	_, err = svc.GetAnswers(ctx, "missing")
	assert.ErrorIs(t, err, entities.ErrQuestionNotFound)
}

func TestQuestionService_GetAnswer(t *testing.T) {
	svc, _ := newTestService(t, entities.Question{ID: "Q1", Answers: []entities.Answer{{ID: "A1"}}})
	ctx := context.Background()

	answer, err := svc.GetAnswer(ctx, "Q1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "A1", answer.ID)

	_, err = svc.GetAnswer(ctx, "Q1", "A2")
	assert.ErrorIs(t, err, entities.ErrAnswerNotFound)

	_, err = svc.GetAnswer(ctx, "Q2", "A1")
	assert.ErrorIs(t, err, entities.ErrAnswerNotFound)
}

func TestQuestionService_CreateAnswer(t *testing.T) {
	svc, _ := newTestService(t, entities.Question{ID: "Q1", Answers: []entities.Answer{}})
	ctx := context.Background()

	_, err := svc.CreateAnswer(ctx, "Q1", entities.Answer{})
	assert.ErrorIs(t, err, entities.ErrAnswerRequired)

	_, err = svc.CreateAnswer(ctx, "missing", entities.Answer{ID: "A1"})
	assert.ErrorIs(t, err, entities.ErrQuestionNotFound)

	created, err := svc.CreateAnswer(ctx, "Q1", entities.Answer{ID: "A1", Author: "Tim", Summary: "Jack"})
	require.NoError(t, err)
	assert.Equal(t, "A1", created.ID)

	answers, err := svc.GetAnswers(ctx, "Q1")
	require.NoError(t, err)
	assert.Len(t, answers, 1)
}

func TestQuestionService_ImportQuestions(t *testing.T) {
	svc, _ := newTestService(t, entities.Question{ID: "Q1"})
	ctx := context.Background()

	result, err := svc.ImportQuestions(ctx, []entities.Question{
		{ID: "Q1", Summary: "duplicate"},
		{ID: "Q2", Summary: "new"},
		{},
		{ID: "Q3", Summary: "also new"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 2, result.Skipped)
	assert.Len(t, result.Skips, 2)

	status, err := svc.StoreStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, &ports.StoreStatus{Backend: "memory", Questions: 3}, status)
}

func TestQuestionService_StorageFailures(t *testing.T) {
	m := metrics.New()
	svc := NewQuestionService(repository.NewQuestionRepository(failingStorage{}), failingStorage{}, logger.NewNop(), m)
	ctx := context.Background()

	_, err := svc.ListQuestions(ctx)
	assert.ErrorIs(t, err, entities.ErrStorageCorrupted)

	_, err = svc.GetAnswers(ctx, "Q1")
	assert.ErrorIs(t, err, entities.ErrStorageCorrupted)
	assert.NotErrorIs(t, err, entities.ErrQuestionNotFound)

	_, err = svc.ImportQuestions(ctx, []entities.Question{{ID: "Q1"}})
	assert.ErrorIs(t, err, entities.ErrStorageCorrupted)

	_, err = svc.StoreStatus(ctx)
	assert.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreOperations.WithLabelValues("list_questions", "error")))
}

func TestQuestionService_NilMetrics(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := NewQuestionService(repository.NewQuestionRepository(store), store, logger.NewNop(), nil)

	_, err := svc.CreateQuestion(context.Background(), entities.Question{ID: "Q1"})
	assert.NoError(t, err)
}
