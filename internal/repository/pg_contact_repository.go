package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/contactform/backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgContactRepository is the PostgreSQL implementation of ContactRepository.
type PgContactRepository struct {
	pool *pgxpool.Pool
}

// NewPgContactRepository creates a PgContactRepository backed by the given pool.
func NewPgContactRepository(pool *pgxpool.Pool) *PgContactRepository {
	return &PgContactRepository{pool: pool}
}

// Ensure PgContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*PgContactRepository)(nil)

// Put inserts a new contacts row. The id and timestamps are generated by the
// caller; the row is stored exactly as given.
func (r *PgContactRepository) Put(ctx context.Context, c *model.Contact) error {
	createdAt, err := time.Parse(time.RFC3339Nano, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("parse createdAt: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("parse updatedAt: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO contacts (id, name, message, email, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Name, c.Message, c.Email, createdAt, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// ScanAll returns every row of the contacts table, newest first.
func (r *PgContactRepository) ScanAll(ctx context.Context) ([]*model.Contact, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, message, email, created_at, updated_at
		 FROM contacts
		 ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*model.Contact
	for rows.Next() {
		var c model.Contact
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&c.ID, &c.Name, &c.Message, &c.Email, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		c.CreatedAt = model.FormatTimestamp(createdAt)
		c.UpdatedAt = model.FormatTimestamp(updatedAt)
		contacts = append(contacts, &c)
	}
	return contacts, rows.Err()
}
