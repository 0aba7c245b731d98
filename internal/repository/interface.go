package repository

import (
	"context"

	"github.com/contactform/backend/internal/model"
)

// ContactRepository is the record store for contact submissions.
// Implementations must be safe for concurrent use.
type ContactRepository interface {
	// Put writes one record. Records are never updated, so Put is only
	// called with freshly generated IDs.
	Put(ctx context.Context, c *model.Contact) error
	// ScanAll returns every stored record in no particular order.
	ScanAll(ctx context.Context) ([]*model.Contact, error)
}
