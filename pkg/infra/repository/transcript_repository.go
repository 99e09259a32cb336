package repository

import (
	"context"
	"fmt"

	"github.com/arbetsytan/arbetsytan/pkg/domain/transcript"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TranscriptRepository struct {
	db *gorm.DB
}

func NewTranscriptRepository(db *gorm.DB) transcript.Repository {
	return &TranscriptRepository{
		db: db,
	}
}

func (r *TranscriptRepository) Create(ctx context.Context, entity *transcript.Transcript) error {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("create transcript: %w", err)
	}
	return nil
}

func (r *TranscriptRepository) ListByProject(
	ctx context.Context,
	projectID uuid.UUID,
	offset, limit int,
) ([]transcript.Transcript, error) {
	var entities []transcript.Transcript
	result := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&entities)
	if result.Error != nil {
		return nil, fmt.Errorf("list transcripts: %w", result.Error)
	}
	return entities, nil
}
