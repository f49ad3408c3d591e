package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/responder/core/internal/domain/entities"
)

// decodeQuestions parses a stored document. Blank input and a JSON null are an empty store.
func decodeQuestions(data []byte, source string) ([]entities.Question, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []entities.Question{}, nil
	}

	var questions []entities.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", entities.ErrStorageCorrupted, source, err)
	}
	if questions == nil {
		questions = []entities.Question{}
	}

	return questions, nil
}

func encodeQuestions(questions []entities.Question) ([]byte, error) {
	if questions == nil {
		questions = []entities.Question{}
	}

	data, err := json.MarshalIndent(questions, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode questions: %w", err)
	}
	return data, nil
}
