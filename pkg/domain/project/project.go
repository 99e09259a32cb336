package project

import (
	"fmt"
	"time"

	"github.com/arbetsytan/arbetsytan/pkg/domain"
	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"gorm.io/gorm"
)

const (
	ClassificationNormal          = "normal"
	ClassificationSensitive       = "sensitive"
	ClassificationSourceSensitive = "source-sensitive"
)

type Project struct {
	ID             uuid.UUID           `json:"id" gorm:"type:uuid;primaryKey"`
	Name           string              `json:"name" gorm:"not null;index:idx_project_name"`
	Description    string              `json:"description"`
	Classification string              `json:"classification" gorm:"not null"`
	Settings       domain.SettingsJSON `json:"settings,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Policy is the ingestion policy decoded from Settings. SanitizeMinLevel
// is the masking floor for every blob ingested into the project; empty
// means the pipeline starts at its default level.
type Policy struct {
	SanitizeMinLevel string `mapstructure:"sanitize_min_level"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return p.Validate()
}

func (p *Project) BeforeUpdate(tx *gorm.DB) error {
	p.UpdatedAt = time.Now()
	return p.Validate()
}

func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}

	validClassifications := map[string]bool{
		ClassificationNormal:          true,
		ClassificationSensitive:       true,
		ClassificationSourceSensitive: true,
	}
	if !validClassifications[p.Classification] {
		return fmt.Errorf("invalid classification: %s", p.Classification)
	}

	return nil
}

func (p *Project) IngestionPolicy() (Policy, error) {
	var policy Policy
	if p.Settings == nil {
		return policy, nil
	}
	if err := mapstructure.Decode(map[string]interface{}(p.Settings), &policy); err != nil {
		return Policy{}, fmt.Errorf("invalid project settings: %w", err)
	}
	return policy, nil
}

func (p *Project) TableName() string {
	return "projects"
}
