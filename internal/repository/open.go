package repository

import (
	"context"
	"fmt"

	"github.com/contactform/backend/internal/config"
)

// Open builds the ContactRepository selected by cfg. The returned close
// function releases backend resources and is never nil.
func Open(ctx context.Context, cfg config.StoreConfig) (ContactRepository, func(), error) {
	switch cfg.Driver {
	case config.DriverDynamoDB:
		repo, err := NewDynamoContactRepository(ctx, cfg.TableName)
		if err != nil {
			return nil, func() {}, err
		}
		return repo, func() {}, nil
	case config.DriverPostgres:
		pool, err := NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, func() {}, fmt.Errorf("connect to database: %w", err)
		}
		return NewPgContactRepository(pool), pool.Close, nil
	case config.DriverMemory:
		return NewMemoryContactRepository(), func() {}, nil
	default:
		return nil, func() {}, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
