package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/arbetsytan/arbetsytan/pkg/domain/scout"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// isUniqueViolation reports whether err is a postgres unique-constraint
// violation. The postgres driver is pgx-based, so constraint errors
// surface as *pgconn.PgError.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

type ScoutItemRepository struct {
	db *gorm.DB
}

func NewScoutItemRepository(db *gorm.DB) scout.ItemRepository {
	return &ScoutItemRepository{
		db: db,
	}
}

// Insert writes one feed item. A unique violation on guid_hash means the
// entry was imported by an earlier sweep and maps to ErrDuplicateItem.
func (r *ScoutItemRepository) Insert(ctx context.Context, item *scout.Item) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		if isUniqueViolation(err) {
			return scout.ErrDuplicateItem
		}
		return fmt.Errorf("insert scout item: %w", err)
	}
	return nil
}

func (r *ScoutItemRepository) ListByFeed(
	ctx context.Context,
	feedID uuid.UUID,
	offset, limit int,
) ([]scout.Item, error) {
	var items []scout.Item
	result := r.db.WithContext(ctx).
		Where("feed_id = ?", feedID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&items)
	if result.Error != nil {
		return nil, fmt.Errorf("list scout items: %w", result.Error)
	}
	return items, nil
}
