package project

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/arbetsytan/arbetsytan/pkg/domain"
	domainProject "github.com/arbetsytan/arbetsytan/pkg/domain/project"
	"github.com/arbetsytan/arbetsytan/pkg/handlers/http/request"
	"github.com/arbetsytan/arbetsytan/pkg/infra/auditlogs"
	"github.com/arbetsytan/arbetsytan/pkg/sanitize"
)

type Creator interface {
	Create(ctx context.Context, req *request.CreateProjectRequest) (*domainProject.Project, error)
}

type creator struct {
	logger   *logrus.Logger
	repo     domainProject.Repository
	recorder auditlogs.Recorder
}

func NewCreator(
	logger *logrus.Logger,
	repo domainProject.Repository,
	recorder auditlogs.Recorder,
) Creator {
	return &creator{
		logger:   logger,
		repo:     repo,
		recorder: recorder,
	}
}

func (c *creator) Create(ctx context.Context, req *request.CreateProjectRequest) (*domainProject.Project, error) {
	classification := req.Classification
	if classification == "" {
		classification = domainProject.ClassificationNormal
	}

	entity := domainProject.Project{
		Name:           req.Name,
		Description:    req.Description,
		Classification: classification,
		Settings:       domain.SettingsJSON(req.Settings),
	}
	if err := entity.Validate(); err != nil {
		return nil, err
	}

	// Reject a malformed sanitize_min_level at creation time rather than
	// on the first ingestion into the project.
	policy, err := entity.IngestionPolicy()
	if err != nil {
		return nil, err
	}
	if policy.SanitizeMinLevel != "" && !sanitize.Level(policy.SanitizeMinLevel).Valid() {
		return nil, &sanitize.ErrInvalidLevel{Level: sanitize.Level(policy.SanitizeMinLevel)}
	}

	if err := c.repo.Create(ctx, &entity); err != nil {
		c.logger.WithError(err).Error("failed to create project")
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	c.recorder.Record(ctx, &domainProject.Event{
		ProjectID: entity.ID,
		EventType: domainProject.EventProjectCreated,
		Metadata: domain.MetadataJSON{
			"classification": entity.Classification,
		},
	})

	return &entity, nil
}
