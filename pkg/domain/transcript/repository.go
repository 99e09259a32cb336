package transcript

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, transcript *Transcript) error
	ListByProject(ctx context.Context, projectID uuid.UUID, offset, limit int) ([]Transcript, error)
}
