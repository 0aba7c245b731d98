package service

import (
	"context"

	"github.com/contactform/backend/internal/model"
)

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit validates in, assigns an id and timestamps, and stores the
	// resulting contact. It returns *ValidationError for missing fields and
	// *PersistenceError when the store fails.
	Submit(ctx context.Context, in SubmitInput) (*model.Contact, error)

	// List returns every stored contact, newest first.
	List(ctx context.Context) ([]*model.Contact, error)
}

// SubmitInput is a contact form submission before it is stored.
type SubmitInput struct {
	Name    string
	Message string
	Email   *string
}
