package scout

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrDuplicateItem signals that an item with the same guid hash already
// exists. Refresh sweeps treat it as "seen before", not a failure.
var ErrDuplicateItem = errors.New("scout item already imported")

type FeedRepository interface {
	Create(ctx context.Context, feed *Feed) error
	Get(ctx context.Context, id uuid.UUID) (*Feed, error)
	List(ctx context.Context, offset, limit int) ([]Feed, error)
	ListEnabled(ctx context.Context) ([]Feed, error)
}

type ItemRepository interface {
	Insert(ctx context.Context, item *Item) error
	ListByFeed(ctx context.Context, feedID uuid.UUID, offset, limit int) ([]Item, error)
}
