package repository

import (
	"context"
	"sync"

	"github.com/contactform/backend/internal/model"
)

// BuildFunc constructs a backend and the function that releases it.
type BuildFunc func(ctx context.Context) (ContactRepository, func(), error)

// LazyContactRepository builds its backend on first use and shares it with
// every later call. A failed build is not cached: the error is returned to
// the caller and the next call tries again.
type LazyContactRepository struct {
	build BuildFunc

	mu     sync.Mutex
	repo   ContactRepository
	closer func()
}

var _ ContactRepository = (*LazyContactRepository)(nil)

// NewLazyContactRepository returns a repository that calls build at most
// once successfully.
func NewLazyContactRepository(build BuildFunc) *LazyContactRepository {
	return &LazyContactRepository{build: build}
}

func (l *LazyContactRepository) get(ctx context.Context) (ContactRepository, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.repo != nil {
		return l.repo, nil
	}
	repo, closer, err := l.build(ctx)
	if err != nil {
		return nil, err
	}
	l.repo = repo
	l.closer = closer
	return repo, nil
}

func (l *LazyContactRepository) Put(ctx context.Context, c *model.Contact) error {
	repo, err := l.get(ctx)
	if err != nil {
		return err
	}
	return repo.Put(ctx, c)
}

func (l *LazyContactRepository) ScanAll(ctx context.Context) ([]*model.Contact, error) {
	repo, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	return repo.ScanAll(ctx)
}

// Close releases the backend if one was built. Later calls build a new one.
func (l *LazyContactRepository) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closer != nil {
		l.closer()
	}
	l.repo = nil
	l.closer = nil
}
