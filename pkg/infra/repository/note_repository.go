package repository

import (
	"context"
	"fmt"

	"github.com/arbetsytan/arbetsytan/pkg/domain/note"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) note.Repository {
	return &NoteRepository{
		db: db,
	}
}

func (r *NoteRepository) Create(ctx context.Context, entity *note.Note) error {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

func (r *NoteRepository) ListByProject(
	ctx context.Context,
	projectID uuid.UUID,
	offset, limit int,
) ([]note.Note, error) {
	var entities []note.Note
	result := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&entities)
	if result.Error != nil {
		return nil, fmt.Errorf("list notes: %w", result.Error)
	}
	return entities, nil
}
