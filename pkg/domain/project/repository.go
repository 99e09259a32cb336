package project

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, project *Project) error
	Get(ctx context.Context, id uuid.UUID) (*Project, error)
	List(ctx context.Context, offset, limit int) ([]Project, error)
}

// EventRepository is append-only: events are never updated or deleted.
type EventRepository interface {
	Append(ctx context.Context, event *Event) error
	ListByProject(ctx context.Context, projectID uuid.UUID, offset, limit int) ([]Event, error)
}
