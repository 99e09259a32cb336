package document

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, document *Document) error
	Get(ctx context.Context, id uuid.UUID) (*Document, error)
	ListByProject(ctx context.Context, projectID uuid.UUID, offset, limit int) ([]Document, error)
}
