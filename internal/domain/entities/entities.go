package entities

import "errors"

// Common errors
var (
	ErrQuestionNotFound  = errors.New("question not found")
	ErrAnswerNotFound    = errors.New("answer not found")
	ErrQuestionRequired  = errors.New("question is required")
	ErrAnswerRequired    = errors.New("answer is required")
	ErrDuplicateQuestion = errors.New("question already exists")
	ErrDuplicateAnswer   = errors.New("answer already exists")
	ErrStorageCorrupted  = errors.New("question storage is corrupted")
)

// Question represents a question and the answers given to it
type Question struct {
	ID      string   `json:"id" form:"id"`
	Author  string   `json:"author" form:"author"`
	Summary string   `json:"summary" form:"summary"`
	Answers []Answer `json:"answers"`
}

// Answer represents a single answer nested under a question
type Answer struct {
	ID      string `json:"id" form:"id"`
	Author  string `json:"author" form:"author"`
	Summary string `json:"summary" form:"summary"`
}

// IsEmpty reports whether no field of the question was provided
func (q *Question) IsEmpty() bool {
	return q.ID == "" && q.Author == "" && q.Summary == "" && len(q.Answers) == 0
}

// FindAnswer returns the first answer with the given ID, or nil
func (q *Question) FindAnswer(answerID string) *Answer {
	for i := range q.Answers {
		if q.Answers[i].ID == answerID {
			return &q.Answers[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the question
func (q Question) Clone() Question {
	clone := q
	clone.Answers = make([]Answer, len(q.Answers))
	copy(clone.Answers, q.Answers)
	return clone
}

// IsEmpty reports whether no field of the answer was provided
func (a *Answer) IsEmpty() bool {
	return a.ID == "" && a.Author == "" && a.Summary == ""
}

// CloneQuestions deep-copies a slice of questions. A nil input yields an empty slice.
func CloneQuestions(questions []Question) []Question {
	out := make([]Question, len(questions))
	for i := range questions {
		out[i] = questions[i].Clone()
	}
	return out
}

// FindQuestion returns the index of the first question with the given ID, or -1
func FindQuestion(questions []Question, id string) int {
	for i := range questions {
		if questions[i].ID == id {
			return i
		}
	}
	return -1
}
