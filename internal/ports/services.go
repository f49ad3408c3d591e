package ports

import (
	"context"

	"github.com/responder/core/internal/domain/entities"
)

// QuestionService defines the interface for question business logic
type QuestionService interface {
	ListQuestions(ctx context.Context) ([]entities.Question, error)
	GetQuestion(ctx context.Context, id string) (*entities.Question, error)
	CreateQuestion(ctx context.Context, question entities.Question) (*entities.Question, error)
	GetAnswers(ctx context.Context, questionID string) ([]entities.Answer, error)
	GetAnswer(ctx context.Context, questionID, answerID string) (*entities.Answer, error)
	CreateAnswer(ctx context.Context, questionID string, answer entities.Answer) (*entities.Answer, error)
	ImportQuestions(ctx context.Context, questions []entities.Question) (*ImportResult, error)
	StoreStatus(ctx context.Context) (*StoreStatus, error)
}

// Request types

// QuestionPathParams binds the :questionId path segment
type QuestionPathParams struct {
	QuestionID string `param:"questionId" validate:"required"`
}

// AnswerPathParams binds the :questionId and :answerId path segments
type AnswerPathParams struct {
	QuestionID string `param:"questionId" validate:"required"`
	AnswerID   string `param:"answerId" validate:"required"`
}

// Response types

// ImportResult summarizes a bulk import
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Skips    []string `json:"skips,omitempty"`
}

// StoreStatus describes the backing store for health reporting
type StoreStatus struct {
	Backend   string `json:"backend"`
	Questions int    `json:"questions"`
}
