package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/contactform/backend/internal/model"
)

// MemoryContactRepository keeps contacts in process memory. It backs the
// local development server when no real store is configured.
type MemoryContactRepository struct {
	mu       sync.RWMutex
	contacts map[string]model.Contact
}

var _ ContactRepository = (*MemoryContactRepository)(nil)

func NewMemoryContactRepository() *MemoryContactRepository {
	return &MemoryContactRepository{contacts: make(map[string]model.Contact)}
}

func (r *MemoryContactRepository) Put(ctx context.Context, c *model.Contact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.contacts[c.ID]; exists {
		return fmt.Errorf("contact %s already exists", c.ID)
	}
	r.contacts[c.ID] = cloneContact(c)
	return nil
}

func (r *MemoryContactRepository) ScanAll(ctx context.Context) ([]*model.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Contact, 0, len(r.contacts))
	for _, c := range r.contacts {
		cp := cloneContact(&c)
		out = append(out, &cp)
	}
	return out, nil
}

func cloneContact(c *model.Contact) model.Contact {
	cp := *c
	if c.Email != nil {
		email := *c.Email
		cp.Email = &email
	}
	return cp
}
