package ports

import (
	"context"

	"github.com/responder/core/internal/domain/entities"
)

// QuestionStorage is the persistence port the question store reads and writes through.
// Load returns the whole document; Save replaces it.
type QuestionStorage interface {
	// Load returns every stored question. A missing document yields an empty slice.
	Load(ctx context.Context) ([]entities.Question, error)

	// Save replaces the stored document with questions.
	Save(ctx context.Context, questions []entities.Question) error

	// Describe returns a short human-readable description of the backend.
	Describe() string
}

// QuestionRepository defines the interface for question and answer data operations.
// Lookups that find nothing return a nil result and a nil error.
type QuestionRepository interface {
	ListQuestions(ctx context.Context) ([]entities.Question, error)
	GetQuestionByID(ctx context.Context, id string) (*entities.Question, error)
	AddQuestion(ctx context.Context, question entities.Question) (*entities.Question, error)
	QuestionExists(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
	GetAnswers(ctx context.Context, questionID string) ([]entities.Answer, error)
	GetAnswer(ctx context.Context, questionID, answerID string) (*entities.Answer, error)
	AddAnswer(ctx context.Context, questionID string, answer entities.Answer) (*entities.Answer, error)
}
