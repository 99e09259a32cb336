package repository

import (
	"context"
	"fmt"

	"github.com/arbetsytan/arbetsytan/pkg/domain/project"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectEventRepository struct {
	db *gorm.DB
}

func NewProjectEventRepository(db *gorm.DB) project.EventRepository {
	return &ProjectEventRepository{
		db: db,
	}
}

func (r *ProjectEventRepository) Append(ctx context.Context, event *project.Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("append project event: %w", err)
	}
	return nil
}

func (r *ProjectEventRepository) ListByProject(
	ctx context.Context,
	projectID uuid.UUID,
	offset, limit int,
) ([]project.Event, error) {
	var events []project.Event
	result := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&events)
	if result.Error != nil {
		return nil, fmt.Errorf("list project events: %w", result.Error)
	}
	return events, nil
}
