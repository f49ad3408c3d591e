package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/responder/core/internal/domain/entities"
	"github.com/responder/core/internal/ports"
)

// QuestionRepositoryImpl implements the QuestionRepository interface.
// Every call reloads the whole document from storage; nothing is cached between calls.
type QuestionRepositoryImpl struct {
	storage ports.QuestionStorage

	// mu serializes read-modify-write cycles so concurrent appends are not lost.
	mu sync.Mutex
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(storage ports.QuestionStorage) ports.QuestionRepository {
	return &QuestionRepositoryImpl{storage: storage}
}

func (r *QuestionRepositoryImpl) load(ctx context.Context) ([]entities.Question, error) {
	questions, err := r.storage.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	if questions == nil {
		questions = []entities.Question{}
	}
	return questions, nil
}

func (r *QuestionRepositoryImpl) ListQuestions(ctx context.Context) ([]entities.Question, error) {
	return r.load(ctx)
}

func (r *QuestionRepositoryImpl) GetQuestionByID(ctx context.Context, id string) (*entities.Question, error) {
	questions, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := entities.FindQuestion(questions, id)
	if idx < 0 {
		return nil, nil
	}

	question := questions[idx]
	return &question, nil
}

func (r *QuestionRepositoryImpl) QuestionExists(ctx context.Context, id string) (bool, error) {
	question, err := r.GetQuestionByID(ctx, id)
	if err != nil {
		return false, err
	}
	return question != nil, nil
}

func (r *QuestionRepositoryImpl) Count(ctx context.Context) (int, error) {
	questions, err := r.load(ctx)
	if err != nil {
		return 0, err
	}
	return len(questions), nil
}

func (r *QuestionRepositoryImpl) AddQuestion(ctx context.Context, question entities.Question) (*entities.Question, error) {
	if question.Answers == nil {
		question.Answers = []entities.Answer{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	questions, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	if entities.FindQuestion(questions, question.ID) >= 0 {
		return nil, fmt.Errorf("add question %s: %w", question.ID, entities.ErrDuplicateQuestion)
	}

	questions = append(questions, question)
	if err := r.storage.Save(ctx, questions); err != nil {
		return nil, fmt.Errorf("save questions: %w", err)
	}

	return &question, nil
}

func (r *QuestionRepositoryImpl) GetAnswers(ctx context.Context, questionID string) ([]entities.Answer, error) {
	question, err := r.GetQuestionByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	if question == nil || question.Answers == nil {
		return []entities.Answer{}, nil
	}
	return question.Answers, nil
}

func (r *QuestionRepositoryImpl) GetAnswer(ctx context.Context, questionID, answerID string) (*entities.Answer, error) {
	question, err := r.GetQuestionByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, nil
	}

	answer := question.FindAnswer(answerID)
	if answer == nil {
		return nil, nil
	}

	found := *answer
	return &found, nil
}

func (r *QuestionRepositoryImpl) AddAnswer(ctx context.Context, questionID string, answer entities.Answer) (*entities.Answer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	questions, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := entities.FindQuestion(questions, questionID)
	if idx < 0 {
		return nil, nil
	}

	question := &questions[idx]
	if question.FindAnswer(answer.ID) != nil {
		return nil, fmt.Errorf("add answer %s to question %s: %w", answer.ID, questionID, entities.ErrDuplicateAnswer)
	}

	question.Answers = append(question.Answers, answer)
	if err := r.storage.Save(ctx, questions); err != nil {
		return nil, fmt.Errorf("save questions: %w", err)
	}

	return &answer, nil
}
