package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/responder/core/internal/domain/entities"
	"github.com/responder/core/internal/ports"
)

// DefaultFilePath is the document path used when none is configured
const DefaultFilePath = "questions.json"

const filePerm os.FileMode = 0o644

// FileStorage keeps all questions in a single JSON array file
type FileStorage struct {
	path string
}

// NewFileStorage creates a file-backed storage bound to path
func NewFileStorage(path string) ports.QuestionStorage {
	if path == "" {
		path = DefaultFilePath
	}
	return &FileStorage{path: path}
}

// Path returns the file the storage reads and writes
func (s *FileStorage) Path() string {
	return s.path
}

func (s *FileStorage) Load(ctx context.Context) ([]entities.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []entities.Question{}, nil
		}
		return nil, fmt.Errorf("read questions file %s: %w", s.path, err)
	}

	return decodeQuestions(data, s.path)
}

func (s *FileStorage) Save(ctx context.Context, questions []entities.Question) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encodeQuestions(questions)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	if err := writeFileAtomic(s.path, data, filePerm); err != nil {
		return fmt.Errorf("write questions file %s: %w", s.path, err)
	}

	return nil
}

func (s *FileStorage) Describe() string {
	return "file:" + s.path
}
