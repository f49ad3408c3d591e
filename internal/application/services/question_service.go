package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/responder/core/internal/domain/entities"
	"github.com/responder/core/internal/infrastructure/logger"
	"github.com/responder/core/internal/infrastructure/metrics"
	"github.com/responder/core/internal/ports"
)

var _ ports.QuestionService = (*QuestionService)(nil)

// QuestionService handles question and answer operations
type QuestionService struct {
	questionRepo ports.QuestionRepository
	storage      ports.QuestionStorage
	logger       *logger.Logger
	metrics      *metrics.Metrics
}

// NewQuestionService creates a new question service. m may be nil.
func NewQuestionService(questionRepo ports.QuestionRepository, storage ports.QuestionStorage, logger *logger.Logger, m *metrics.Metrics) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		storage:      storage,
		logger:       logger.WithComponent("question_service"),
		metrics:      m,
	}
}

// observe records the outcome of an operation started at start
func (s *QuestionService) observe(operation string, start time.Time, err error, fields ...interface{}) {
	duration := time.Since(start)
	result := resultLabel(err)

	s.metrics.ObserveStoreOperation(operation, result, duration)

	var storeErr error
	if result == "error" {
		storeErr = err
	}
	s.logger.LogStoreOperation(operation, float64(duration.Nanoseconds())/1e6, storeErr, append(fields, "result", result)...)
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, entities.ErrQuestionNotFound), errors.Is(err, entities.ErrAnswerNotFound):
		return "not_found"
	case errors.Is(err, entities.ErrQuestionRequired), errors.Is(err, entities.ErrAnswerRequired):
		return "invalid"
	case errors.Is(err, entities.ErrDuplicateQuestion), errors.Is(err, entities.ErrDuplicateAnswer):
		return "conflict"
	default:
		return "error"
	}
}

// ListQuestions returns every stored question in insertion order
func (s *QuestionService) ListQuestions(ctx context.Context) (questions []entities.Question, err error) {
	defer func(start time.Time) { s.observe("list_questions", start, err) }(time.Now())

	return s.questionRepo.ListQuestions(ctx)
}

// GetQuestion retrieves a question by ID
func (s *QuestionService) GetQuestion(ctx context.Context, id string) (question *entities.Question, err error) {
	defer func(start time.Time) { s.observe("get_question", start, err, "question_id", id) }(time.Now())

	question, err = s.questionRepo.GetQuestionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, entities.ErrQuestionNotFound
	}
	return question, nil
}

// CreateQuestion stores a caller-supplied question as given
func (s *QuestionService) CreateQuestion(ctx context.Context, question entities.Question) (created *entities.Question, err error) {
	defer func(start time.Time) { s.observe("add_question", start, err, "question_id", question.ID) }(time.Now())

	if question.IsEmpty() {
		return nil, entities.ErrQuestionRequired
	}

	created, err = s.questionRepo.AddQuestion(ctx, question)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Question created", "question_id", created.ID, "author", created.Author)
	return created, nil
}

// GetAnswers returns the answers of a question. A missing question is reported as
// ErrQuestionNotFound, so callers can tell it apart from a question without answers.
func (s *QuestionService) GetAnswers(ctx context.Context, questionID string) (answers []entities.Answer, err error) {
	defer func(start time.Time) { s.observe("get_answers", start, err, "question_id", questionID) }(time.Now())

	exists, err := s.questionRepo.QuestionExists(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, entities.ErrQuestionNotFound
	}

	return s.questionRepo.GetAnswers(ctx, questionID)
}

// GetAnswer retrieves one answer of a question
func (s *QuestionService) GetAnswer(ctx context.Context, questionID, answerID string) (answer *entities.Answer, err error) {
	defer func(start time.Time) {
		s.observe("get_answer", start, err, "question_id", questionID, "answer_id", answerID)
	}(time.Now())

	answer, err = s.questionRepo.GetAnswer(ctx, questionID, answerID)
	if err != nil {
		return nil, err
	}
	if answer == nil {
		return nil, entities.ErrAnswerNotFound
	}
	return answer, nil
}

// CreateAnswer appends an answer to an existing question
func (s *QuestionService) CreateAnswer(ctx context.Context, questionID string, answer entities.Answer) (created *entities.Answer, err error) {
	defer func(start time.Time) {
		s.observe("add_answer", start, err, "question_id", questionID, "answer_id", answer.ID)
	}(time.Now())

	if answer.IsEmpty() {
		return nil, entities.ErrAnswerRequired
	}

	created, err = s.questionRepo.AddAnswer(ctx, questionID, answer)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, entities.ErrQuestionNotFound
	}

	s.logger.Infow("Answer created", "question_id", questionID, "answer_id", created.ID)
	return created, nil
}

// ImportQuestions adds each question in order. Empty and duplicate questions are skipped;
// any other failure aborts the import.
func (s *QuestionService) ImportQuestions(ctx context.Context, questions []entities.Question) (*ports.ImportResult, error) {
	result := &ports.ImportResult{}

	for i, question := range questions {
		_, err := s.CreateQuestion(ctx, question)
		switch {
		case err == nil:
			result.Imported++
		case errors.Is(err, entities.ErrQuestionRequired):
			result.Skipped++
			result.Skips = append(result.Skips, fmt.Sprintf("#%d: empty question", i))
		case errors.Is(err, entities.ErrDuplicateQuestion):
			result.Skipped++
			result.Skips = append(result.Skips, fmt.Sprintf("#%d: question %s already exists", i, question.ID))
		default:
			return result, fmt.Errorf("import question #%d: %w", i, err)
		}
	}

	s.logger.Infow("Questions imported", "imported", result.Imported, "skipped", result.Skipped)
	return result, nil
}

// StoreStatus reports the backend and how many questions it holds
func (s *QuestionService) StoreStatus(ctx context.Context) (*ports.StoreStatus, error) {
	count, err := s.questionRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &ports.StoreStatus{
		Backend:   s.storage.Describe(),
		Questions: count,
	}, nil
}
