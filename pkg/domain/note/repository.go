package note

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, note *Note) error
	ListByProject(ctx context.Context, projectID uuid.UUID, offset, limit int) ([]Note, error)
}
