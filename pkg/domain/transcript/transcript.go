package transcript

import (
	"fmt"
	"time"

	"github.com/arbetsytan/arbetsytan/pkg/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transcript stores the sanitized text of a voice memo. SourceRef is an
// opaque reference to the audio (never a transcript); the audio itself
// is not managed here.
type Transcript struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID       uuid.UUID `json:"project_id" gorm:"type:uuid;not null;index:idx_transcript_project"`
	SourceRef       string    `json:"source_ref"`
	DurationSeconds float64   `json:"duration_seconds"`
	Engine          string    `json:"engine"`

	MaskedText     string             `json:"masked_text"`
	SanitizeLevel  string             `json:"sanitize_level" gorm:"not null"`
	PiiGateReasons domain.ReasonsJSON `json:"pii_gate_reasons,omitempty" gorm:"type:jsonb"`
	AIAllowed      bool               `json:"ai_allowed"`
	ExportAllowed  bool               `json:"export_allowed"`

	CreatedAt time.Time `json:"created_at"`
}

func (t *Transcript) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.SanitizeLevel == "" {
		return fmt.Errorf("sanitize level is required")
	}
	return nil
}

func (t *Transcript) TableName() string {
	return "transcripts"
}
