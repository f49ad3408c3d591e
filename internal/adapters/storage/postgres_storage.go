package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/responder/core/internal/domain/entities"
	"github.com/responder/core/internal/infrastructure/database"
	"github.com/responder/core/internal/ports"
)

// PostgresStorage keeps the question document as a single jsonb row
type PostgresStorage struct {
	db       *database.DB
	document string
}

// NewPostgresStorage creates a storage backed by the question_documents table
func NewPostgresStorage(db *database.DB, document string) ports.QuestionStorage {
	return &PostgresStorage{db: db, document: document}
}

func (s *PostgresStorage) Load(ctx context.Context) ([]entities.Question, error) {
	query := `SELECT document FROM question_documents WHERE name = $1`

	var raw []byte
	err := s.db.DB.GetContext(ctx, &raw, query, s.document)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []entities.Question{}, nil
		}
		return nil, fmt.Errorf("load question document %s: %w", s.document, err)
	}

	return decodeQuestions(raw, "question_documents/"+s.document)
}

func (s *PostgresStorage) Save(ctx context.Context, questions []entities.Question) error {
	payload, err := encodeQuestions(questions)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO question_documents (name, document, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (name) DO UPDATE
		SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at`

	return s.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, query, s.document, string(payload)); err != nil {
			return fmt.Errorf("save question document %s: %w", s.document, err)
		}
		return nil
	})
}

func (s *PostgresStorage) Describe() string {
	return "postgres:" + s.document
}
