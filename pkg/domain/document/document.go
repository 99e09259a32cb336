package document

import (
	"fmt"
	"time"

	"github.com/arbetsytan/arbetsytan/pkg/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	FileTypeTxt = "txt"
	FileTypePdf = "pdf"
)

// Document stores the sanitized text of an uploaded file. Raw extracted
// text is never persisted: MaskedText is the only text column, written
// once at ingestion together with the sanitization outcome and never
// recomputed.
type Document struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID `json:"project_id" gorm:"type:uuid;not null;index:idx_document_project"`
	Filename  string    `json:"filename" gorm:"not null"`
	FileType  string    `json:"file_type" gorm:"not null"`

	MaskedText     string             `json:"masked_text"`
	SanitizeLevel  string             `json:"sanitize_level" gorm:"not null"`
	PiiGateReasons domain.ReasonsJSON `json:"pii_gate_reasons,omitempty" gorm:"type:jsonb"`
	AIAllowed      bool               `json:"ai_allowed"`
	ExportAllowed  bool               `json:"export_allowed"`

	CreatedAt time.Time `json:"created_at"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return d.Validate()
}

func (d *Document) Validate() error {
	if d.Filename == "" {
		return fmt.Errorf("filename is required")
	}
	if d.FileType != FileTypeTxt {
		return fmt.Errorf("invalid file type for storage: %s", d.FileType)
	}
	if d.SanitizeLevel == "" {
		return fmt.Errorf("sanitize level is required")
	}
	return nil
}

func (d *Document) TableName() string {
	return "documents"
}
