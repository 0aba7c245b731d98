package repository

import "errors"

// ErrNoTable is returned when a store backend is built without the table
// name it needs.
var ErrNoTable = errors.New("contact table name is not configured")
