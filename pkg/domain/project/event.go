package project

import (
	"time"

	"github.com/arbetsytan/arbetsytan/pkg/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Audit event types. The set is closed: handlers never invent ad-hoc
// event type strings.
const (
	EventProjectCreated     = "project.created"
	EventDocumentIngested   = "document.ingested"
	EventNoteCreated        = "note.created"
	EventTranscriptIngested = "transcript.ingested"
	EventFeedItemImported   = "feed.item_imported"
	EventExportGenerated    = "export.generated"
	EventIngestionRejected  = "ingestion.rejected"
)

// Event is one row of the append-only project audit log. Metadata carries
// ids, counts, levels and reason codes only; text content never enters
// the audit log.
type Event struct {
	ID        uuid.UUID           `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID           `json:"project_id" gorm:"type:uuid;not null;index:idx_event_project"`
	EventType string              `json:"event_type" gorm:"not null"`
	Actor     string              `json:"actor"`
	Metadata  domain.MetadataJSON `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt time.Time           `json:"created_at"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (e *Event) TableName() string {
	return "project_events"
}
