package note

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/arbetsytan/arbetsytan/pkg/app/ingest"
	appProject "github.com/arbetsytan/arbetsytan/pkg/app/project"
	"github.com/arbetsytan/arbetsytan/pkg/domain"
	domainNote "github.com/arbetsytan/arbetsytan/pkg/domain/note"
	domainProject "github.com/arbetsytan/arbetsytan/pkg/domain/project"
	"github.com/arbetsytan/arbetsytan/pkg/handlers/http/request"
	"github.com/arbetsytan/arbetsytan/pkg/infra/auditlogs"
)

var ErrEmptyNote = errors.New("note text is required")

type Creator interface {
	Create(ctx context.Context, projectID uuid.UUID, req *request.CreateNoteRequest) (*domainNote.Note, error)
}

type creator struct {
	logger   *logrus.Logger
	repo     domainNote.Repository
	projects appProject.Finder
	pipeline ingest.Pipeline
	recorder auditlogs.Recorder
}

func NewCreator(
	logger *logrus.Logger,
	repo domainNote.Repository,
	projects appProject.Finder,
	pipeline ingest.Pipeline,
	recorder auditlogs.Recorder,
) Creator {
	return &creator{
		logger:   logger,
		repo:     repo,
		projects: projects,
		pipeline: pipeline,
		recorder: recorder,
	}
}

func (c *creator) Create(
	ctx context.Context,
	projectID uuid.UUID,
	req *request.CreateNoteRequest,
) (*domainNote.Note, error) {
	if req.Text == "" {
		return nil, ErrEmptyNote
	}

	proj, err := c.projects.Find(ctx, projectID)
	if err != nil {
		return nil, err
	}

	policy, err := proj.IngestionPolicy()
	if err != nil {
		return nil, err
	}

	outcome, err := c.pipeline.Run(req.Text, policy.SanitizeMinLevel)
	if err != nil {
		if errors.Is(err, ingest.ErrIngestionRejected) {
			c.recorder.Record(ctx, &domainProject.Event{
				ProjectID: proj.ID,
				EventType: domainProject.EventIngestionRejected,
				Actor:     req.Actor,
				Metadata: domain.MetadataJSON{
					"source": "note",
				},
			})
		}
		return nil, err
	}

	entity := domainNote.Note{
		ProjectID:      proj.ID,
		MaskedText:     outcome.MaskedText,
		SanitizeLevel:  outcome.Level,
		PiiGateReasons: outcome.Reasons,
		AIAllowed:      outcome.AIAllowed,
		ExportAllowed:  outcome.ExportAllowed,
	}
	if err := c.repo.Create(ctx, &entity); err != nil {
		c.logger.WithError(err).Error("failed to store note")
		return nil, fmt.Errorf("failed to store note: %w", err)
	}

	c.recorder.Record(ctx, &domainProject.Event{
		ProjectID: proj.ID,
		EventType: domainProject.EventNoteCreated,
		Actor:     req.Actor,
		Metadata: domain.MetadataJSON{
			"note_id":        entity.ID.String(),
			"sanitize_level": entity.SanitizeLevel,
			"ai_allowed":     entity.AIAllowed,
			"export_allowed": entity.ExportAllowed,
		},
	})

	return &entity, nil
}
