package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/arbetsytan/arbetsytan/pkg/domain"
	"github.com/arbetsytan/arbetsytan/pkg/domain/document"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) document.Repository {
	return &DocumentRepository{
		db: db,
	}
}

func (r *DocumentRepository) Create(ctx context.Context, entity *document.Document) error {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

func (r *DocumentRepository) Get(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	var entity document.Document
	result := r.db.WithContext(ctx).First(&entity, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("document", id)
		}
		return nil, fmt.Errorf("get document: %w", result.Error)
	}
	return &entity, nil
}

func (r *DocumentRepository) ListByProject(
	ctx context.Context,
	projectID uuid.UUID,
	offset, limit int,
) ([]document.Document, error) {
	var entities []document.Document
	result := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&entities)
	if result.Error != nil {
		return nil, fmt.Errorf("list documents: %w", result.Error)
	}
	return entities, nil
}
