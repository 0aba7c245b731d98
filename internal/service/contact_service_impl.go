package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/contactform/backend/internal/model"
	"github.com/contactform/backend/internal/repository"
)

// idSuffixLength is the number of random characters after the timestamp in
// a contact id.
const idSuffixLength = 9

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo  repository.ContactRepository
	now   func() time.Time
	newID func(time.Time) string
}

// Option customises a ContactService.
type Option func(*contactServiceImpl)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *contactServiceImpl) { s.now = now }
}

// WithIDGenerator replaces the default id generator.
func WithIDGenerator(newID func(time.Time) string) Option {
	return func(s *contactServiceImpl) { s.newID = newID }
}

// NewContactService creates a ContactService backed by the given repository.
func NewContactService(repo repository.ContactRepository, opts ...Option) ContactService {
	s := &contactServiceImpl{repo: repo, now: time.Now, newID: NewContactID}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewContactID returns "<unix millis>-<random lowercase alnum>".
func NewContactID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:idSuffixLength]
	return fmt.Sprintf("%d-%s", now.UnixMilli(), suffix)
}

// Submit stores a new contact. CreatedAt and UpdatedAt are equal.
func (s *contactServiceImpl) Submit(ctx context.Context, in SubmitInput) (*model.Contact, error) {
	if in.Name == "" || in.Message == "" {
		return nil, newValidationError()
	}

	var email *string
	if in.Email != nil && *in.Email != "" {
		e := *in.Email
		email = &e
	}

	now := s.now()
	ts := model.FormatTimestamp(now)
	c := &model.Contact{
		ID:        s.newID(now),
		Name:      in.Name,
		Message:   in.Message,
		Email:     email,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := s.repo.Put(ctx, c); err != nil {
		return nil, &PersistenceError{Op: "put", Err: err}
	}
	return c, nil
}

// List returns all contacts sorted by CreatedAt descending. Contacts whose
// CreatedAt does not parse are placed after the rest.
func (s *contactServiceImpl) List(ctx context.Context) ([]*model.Contact, error) {
	contacts, err := s.repo.ScanAll(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "scan", Err: err}
	}
	if contacts == nil {
		contacts = []*model.Contact{}
	}
	SortNewestFirst(contacts)
	return contacts, nil
}

// SortNewestFirst orders contacts by CreatedAt, newest first. Equal or
// unparsable timestamps are ordered by ID descending, so the result does not
// depend on the order the store returned them in.
func SortNewestFirst(contacts []*model.Contact) {
	sort.SliceStable(contacts, func(i, j int) bool {
		ti, okI := contacts[i].CreatedTime()
		tj, okJ := contacts[j].CreatedTime()
		if okI != okJ {
			return okI
		}
		if okI && !ti.Equal(tj) {
			return ti.After(tj)
		}
		return contacts[i].ID > contacts[j].ID
	})
}
