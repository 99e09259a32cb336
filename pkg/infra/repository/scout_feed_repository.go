package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/arbetsytan/arbetsytan/pkg/domain"
	"github.com/arbetsytan/arbetsytan/pkg/domain/scout"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScoutFeedRepository struct {
	db *gorm.DB
}

func NewScoutFeedRepository(db *gorm.DB) scout.FeedRepository {
	return &ScoutFeedRepository{
		db: db,
	}
}

func (r *ScoutFeedRepository) Create(ctx context.Context, feed *scout.Feed) error {
	if err := r.db.WithContext(ctx).Create(feed).Error; err != nil {
		return fmt.Errorf("create feed: %w", err)
	}
	return nil
}

func (r *ScoutFeedRepository) Get(ctx context.Context, id uuid.UUID) (*scout.Feed, error) {
	var feed scout.Feed
	result := r.db.WithContext(ctx).First(&feed, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("feed", id)
		}
		return nil, fmt.Errorf("get feed: %w", result.Error)
	}
	return &feed, nil
}

func (r *ScoutFeedRepository) List(ctx context.Context, offset, limit int) ([]scout.Feed, error) {
	var feeds []scout.Feed
	result := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&feeds)
	if result.Error != nil {
		return nil, fmt.Errorf("list feeds: %w", result.Error)
	}
	return feeds, nil
}

func (r *ScoutFeedRepository) ListEnabled(ctx context.Context) ([]scout.Feed, error) {
	var feeds []scout.Feed
	result := r.db.WithContext(ctx).
		Where("enabled = ?", true).
		Find(&feeds)
	if result.Error != nil {
		return nil, fmt.Errorf("list enabled feeds: %w", result.Error)
	}
	return feeds, nil
}
