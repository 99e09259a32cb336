package scout

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/arbetsytan/arbetsytan/pkg/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Feed is a watched RSS/Atom source.
type Feed struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name    string    `json:"name" gorm:"not null"`
	URL     string    `json:"url" gorm:"not null;uniqueIndex:idx_feed_url"`
	Enabled bool      `json:"enabled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (f *Feed) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return f.Validate()
}

func (f *Feed) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !strings.HasPrefix(f.URL, "http://") && !strings.HasPrefix(f.URL, "https://") {
		return fmt.Errorf("feed url must use http or https")
	}
	return nil
}

func (f *Feed) TableName() string {
	return "scout_feeds"
}

// Item is one imported feed entry. Title and summary both pass through
// the full sanitization pipeline before storage, like every other
// ingested blob.
type Item struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	FeedID      uuid.UUID  `json:"feed_id" gorm:"type:uuid;not null;index:idx_item_feed"`
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	GuidHash    string     `json:"guid_hash" gorm:"not null;uniqueIndex:idx_item_guid"`

	MaskedSummary  string             `json:"masked_summary"`
	SanitizeLevel  string             `json:"sanitize_level" gorm:"not null"`
	PiiGateReasons domain.ReasonsJSON `json:"pii_gate_reasons,omitempty" gorm:"type:jsonb"`
	AIAllowed      bool               `json:"ai_allowed"`
	ExportAllowed  bool               `json:"export_allowed"`

	CreatedAt time.Time `json:"created_at"`
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.GuidHash == "" {
		return fmt.Errorf("guid hash is required")
	}
	return nil
}

func (i *Item) TableName() string {
	return "scout_items"
}

// GuidHash derives the dedup key for a feed entry. Feed URL plus the
// entry's stable id keeps entries unique across feeds even when ids
// collide between sources.
func GuidHash(feedURL, stableID string) string {
	sum := sha256.Sum256([]byte(feedURL + stableID))
	return hex.EncodeToString(sum[:])
}
