package domain

import (
	"fmt"

	"github.com/google/uuid"
)

type notFoundError struct {
	EntityType string
	ID         uuid.UUID
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("%s with ID '%s' not found", e.EntityType, e.ID.String())
}

func NewNotFoundError(entityType string, id uuid.UUID) error {
	return &notFoundError{
		EntityType: entityType,
		ID:         id,
	}
}

// IsNotFound reports whether err is an entity-not-found error, so handlers
// can map it to a 404 without depending on repository internals.
func IsNotFound(err error) bool {
	_, ok := err.(*notFoundError)
	return ok
}
