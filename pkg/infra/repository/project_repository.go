package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/arbetsytan/arbetsytan/pkg/domain"
	"github.com/arbetsytan/arbetsytan/pkg/domain/project"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) project.Repository {
	return &ProjectRepository{
		db: db,
	}
}

func (r *ProjectRepository) Create(ctx context.Context, entity *project.Project) error {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) Get(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	var entity project.Project
	result := r.db.WithContext(ctx).First(&entity, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("project", id)
		}
		return nil, fmt.Errorf("get project: %w", result.Error)
	}
	return &entity, nil
}

func (r *ProjectRepository) List(ctx context.Context, offset, limit int) ([]project.Project, error) {
	var entities []project.Project
	result := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&entities)
	if result.Error != nil {
		return nil, fmt.Errorf("list projects: %w", result.Error)
	}
	return entities, nil
}
