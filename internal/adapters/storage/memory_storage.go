package storage

import (
	"context"
	"sync"

	"github.com/responder/core/internal/domain/entities"
	"github.com/responder/core/internal/ports"
)

// MemoryStorage keeps questions in process memory. Data is copied on the way in and out.
type MemoryStorage struct {
	mu        sync.RWMutex
	questions []entities.Question
}

// NewMemoryStorage creates an in-memory storage seeded with questions
func NewMemoryStorage(seed ...entities.Question) ports.QuestionStorage {
	return &MemoryStorage{questions: entities.CloneQuestions(seed)}
}

func (s *MemoryStorage) Load(ctx context.Context) ([]entities.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return entities.CloneQuestions(s.questions), nil
}

func (s *MemoryStorage) Save(ctx context.Context, questions []entities.Question) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions = entities.CloneQuestions(questions)
	return nil
}

func (s *MemoryStorage) Describe() string {
	return "memory"
}
