package note

import (
	"fmt"
	"time"

	"github.com/arbetsytan/arbetsytan/pkg/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Note is a free-text note, stored sanitized only.
type Note struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID `json:"project_id" gorm:"type:uuid;not null;index:idx_note_project"`

	MaskedText     string             `json:"masked_text"`
	SanitizeLevel  string             `json:"sanitize_level" gorm:"not null"`
	PiiGateReasons domain.ReasonsJSON `json:"pii_gate_reasons,omitempty" gorm:"type:jsonb"`
	AIAllowed      bool               `json:"ai_allowed"`
	ExportAllowed  bool               `json:"export_allowed"`

	CreatedAt time.Time `json:"created_at"`
}

func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.SanitizeLevel == "" {
		return fmt.Errorf("sanitize level is required")
	}
	return nil
}

func (n *Note) TableName() string {
	return "notes"
}
