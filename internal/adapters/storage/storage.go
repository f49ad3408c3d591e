// Package storage provides the backends the question store persists through.
package storage

import (
	"fmt"

	"github.com/responder/core/internal/infrastructure/config"
	"github.com/responder/core/internal/infrastructure/database"
	"github.com/responder/core/internal/ports"
)

// New builds the storage selected by cfg.Driver. db is only used by the postgres driver.
func New(cfg config.StorageConfig, db *database.DB) (ports.QuestionStorage, error) {
	switch cfg.Driver {
	case config.StorageDriverFile, "":
		return NewFileStorage(cfg.Path), nil
	case config.StorageDriverMemory:
		return NewMemoryStorage(), nil
	case config.StorageDriverPostgres:
		if db == nil {
			return nil, fmt.Errorf("postgres storage requires a database connection")
		}
		return NewPostgresStorage(db, cfg.Document), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
