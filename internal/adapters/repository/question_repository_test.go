package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/responder/core/internal/adapters/storage"
	"github.com/responder/core/internal/domain/entities"
	"github.com/responder/core/internal/ports"
)

// newFileRepository returns a repository over an empty JSON file and the file's path.
func newFileRepository(t *testing.T) (ports.QuestionRepository, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test-questions.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	return NewQuestionRepository(storage.NewFileStorage(path)), path
}

func seed(t *testing.T, path string, questions []entities.Question) {
	t.Helper()

	data, err := json.Marshal(questions)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func twoQuestions() []entities.Question {
	return []entities.Question{
		{ID: uuid.NewString(), Summary: "What is my name?", Author: "Jack London", Answers: []entities.Answer{}},
		{ID: uuid.NewString(), Summary: "Who are you?", Author: "Tim Doods", Answers: []entities.Answer{}},
	}
}

func TestListQuestions(t *testing.T) {
	repo, path := newFileRepository(t)
	ctx := context.Background()

	questions, err := repo.ListQuestions(ctx)
	require.NoError(t, err)
	assert.Len(t, questions, 0)

	seeded := twoQuestions()
	seed(t, path, seeded)

	questions, err = repo.ListQuestions(ctx)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, seeded[0].ID, questions[0].ID)
	assert.Equal(t, seeded[1].ID, questions[1].ID)
}

func TestListQuestions_MissingFile(t *testing.T) {
	repo := NewQuestionRepository(storage.NewFileStorage(filepath.Join(t.TempDir(), "absent.json")))

	questions, err := repo.ListQuestions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestListQuestions_CorruptedFile(t *testing.T) {
	repo, path := newFileRepository(t)
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := repo.ListQuestions(context.Background())
	assert.ErrorIs(t, err, entities.ErrStorageCorrupted)
}

func TestGetQuestionByID(t *testing.T) {
	repo, path := newFileRepository(t)
	ctx := context.Background()

	seeded := twoQuestions()
	seed(t, path, seeded)

	question, err := repo.GetQuestionByID(ctx, seeded[0].ID)
	require.NoError(t, err)
	require.NotNil(t, question)
	assert.Equal(t, seeded[0].ID, question.ID)
	assert.Equal(t, "What is my name?", question.Summary)
	assert.Equal(t, "Jack London", question.Author)
	assert.Len(t, question.Answers, 0)
}

func TestGetQuestionByID_NotFound(t *testing.T) {
	repo, path := newFileRepository(t)
	seed(t, path, twoQuestions())

	question, err := repo.GetQuestionByID(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, question)
}

func TestAddQuestion(t *testing.T) {
	repo, path := newFileRepository(t)
	ctx := context.Background()
	seed(t, path, twoQuestions())

	newQuestion := entities.Question{
		ID:      uuid.NewString(),
		Summary: "Am I speaking with?",
		Author:  "Mateusz Kopko",
		Answers: []entities.Answer{},
	}

	added, err := repo.AddQuestion(ctx, newQuestion)
	require.NoError(t, err)
	assert.Equal(t, newQuestion, *added)

	questions, err := repo.ListQuestions(ctx)
	require.NoError(t, err)
	require.Len(t, questions, 3)
	assert.Equal(t, newQuestion, questions[2])

	found, err := repo.GetQuestionByID(ctx, newQuestion.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, newQuestion.Summary, found.Summary)
}

func TestAddQuestion_EmptyStore(t *testing.T) {
	repo, _ := newFileRepository(t)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = repo.AddQuestion(ctx, entities.Question{ID: "Q2", Author: "Ann", Summary: "Why?"})
	require.NoError(t, err)

	questions, err := repo.ListQuestions(ctx)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.NotNil(t, questions[0].Answers, "answers are normalized to an empty array")
}

func TestAddQuestion_Duplicate(t *testing.T) {
	repo, path := newFileRepository(t)
	seeded := twoQuestions()
	seed(t, path, seeded)

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = repo.AddQuestion(context.Background(), entities.Question{ID: seeded[1].ID, Summary: "again"})
	assert.ErrorIs(t, err, entities.ErrDuplicateQuestion)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestQuestionExists(t *testing.T) {
	repo, path := newFileRepository(t)
	seeded := twoQuestions()
	seed(t, path, seeded)

	exists, err := repo.QuestionExists(context.Background(), seeded[0].ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.QuestionExists(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGetAnswers(t *testing.T) {
	repo, path := newFileRepository(t)
	ctx := context.Background()

	seeded := twoQuestions()
	seeded[0].Answers = []entities.Answer{
		{ID: uuid.NewString(), Author: "Brian McKenzie", Summary: "The Earth is flat."},
		{ID: uuid.NewString(), Author: "Dr Strange", Summary: "The Earth is round."},
	}
	seed(t, path, seeded)

	answers, err := repo.GetAnswers(ctx, seeded[0].ID)
	require.NoError(t, err)
	assert.Equal(t, seeded[0].Answers, answers)

	answers, err = repo.GetAnswers(ctx, seeded[1].ID)
	require.NoError(t, err)
	assert.NotNil(t, answers)
	assert.Len(t, answers, 0)

	answers, err = repo.GetAnswers(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.NotNil(t, answers)
	assert.Len(t, answers, 0)
}

func TestGetAnswers_NullAnswersInDocument(t *testing.T) {
	repo, path := newFileRepository(t)
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"Q1","author":"a","summary":"s","answers":null}]`), 0o644))

	answers, err := repo.GetAnswers(context.Background(), "Q1")
	require.NoError(t, err)
	assert.NotNil(t, answers)
	assert.Empty(t, answers)
}

func TestGetAnswer(t *testing.T) {
	repo, path := newFileRepository(t)
	ctx := context.Background()

	seeded := twoQuestions()
	answer := entities.Answer{ID: uuid.NewString(), Author: "Brian McKenzie", Summary: "The Earth is flat."}
	seeded[0].Answers = []entities.Answer{answer}
	seed(t, path, seeded)

	found, err := repo.GetAnswer(ctx, seeded[0].ID, answer.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, answer, *found)

	missingAnswer, err := repo.GetAnswer(ctx, seeded[0].ID, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, missingAnswer)

	missingQuestion, err := repo.GetAnswer(ctx, uuid.NewString(), answer.ID)
	require.NoError(t, err)
	assert.Nil(t, missingQuestion)
}

func TestAddAnswer(t *testing.T) {
	repo, path := newFileRepository(t)
	ctx := context.Background()
	seed(t, path, []entities.Question{{ID: "Q1", Author: "Jack London", Summary: "What is my name?", Answers: []entities.Answer{}}})

	answer := entities.Answer{ID: "A1", Author: "Tim Doods", Summary: "Jack"}
	added, err := repo.AddAnswer(ctx, "Q1", answer)
	require.NoError(t, err)
	require.NotNil(t, added)
	assert.Equal(t, answer, *added)

	answers, err := repo.GetAnswers(ctx, "Q1")
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, "A1", answers[0].ID)
}

func TestAddAnswer_QuestionNotFoundLeavesFileUnchanged(t *testing.T) {
	repo, path := newFileRepository(t)
	seed(t, path, twoQuestions())

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	added, err := repo.AddAnswer(context.Background(), uuid.NewString(), entities.Answer{ID: "A1"})
	require.NoError(t, err)
	assert.Nil(t, added)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestAddAnswer_Duplicate(t *testing.T) {
	repo, path := newFileRepository(t)
	seed(t, path, []entities.Question{{ID: "Q1", Answers: []entities.Answer{{ID: "A1"}}}})

	_, err := repo.AddAnswer(context.Background(), "Q1", entities.Answer{ID: "A1", Summary: "again"})
	assert.ErrorIs(t, err, entities.ErrDuplicateAnswer)

	// The same answer id under another question is fine.
	_, err = repo.AddQuestion(context.Background(), entities.Question{ID: "Q2"})
	require.NoError(t, err)
	_, err = repo.AddAnswer(context.Background(), "Q2", entities.Answer{ID: "A1"})
	assert.NoError(t, err)
}

func TestReturnedValuesDoNotAliasStore(t *testing.T) {
	repo := NewQuestionRepository(storage.NewMemoryStorage(entities.Question{
		ID:      "Q1",
		Answers: []entities.Answer{{ID: "A1", Summary: "original"}},
	}))
	ctx := context.Background()

	answer, err := repo.GetAnswer(ctx, "Q1", "A1")
	require.NoError(t, err)
	answer.Summary = "changed"

	again, err := repo.GetAnswer(ctx, "Q1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "original", again.Summary)
}

func TestConcurrentWritesAreNotLost(t *testing.T) {
	repo, _ := newFileRepository(t)
	ctx := context.Background()

	_, err := repo.AddQuestion(ctx, entities.Question{ID: "Q1"})
	require.NoError(t, err)

	const writers = 25
	var wg sync.WaitGroup
	errs := make(chan error, writers*2)

	for i := 0; i < writers; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, err := repo.AddQuestion(ctx, entities.Question{ID: fmt.Sprintf("Q-%d", i)})
			errs <- err
		}(i)
		go func(i int) {
			defer wg.Done()
			_, err := repo.AddAnswer(ctx, "Q1", entities.Answer{ID: fmt.Sprintf("A-%d", i)})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, writers+1, count)

	answers, err := repo.GetAnswers(ctx, "Q1")
	require.NoError(t, err)
	assert.Len(t, answers, writers)
}
