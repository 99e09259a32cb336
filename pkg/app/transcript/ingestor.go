package transcript

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/arbetsytan/arbetsytan/pkg/app/ingest"
	appProject "github.com/arbetsytan/arbetsytan/pkg/app/project"
	"github.com/arbetsytan/arbetsytan/pkg/domain"
	domainProject "github.com/arbetsytan/arbetsytan/pkg/domain/project"
	domainTranscript "github.com/arbetsytan/arbetsytan/pkg/domain/transcript"
	"github.com/arbetsytan/arbetsytan/pkg/handlers/http/request"
	"github.com/arbetsytan/arbetsytan/pkg/infra/auditlogs"
	"github.com/arbetsytan/arbetsytan/pkg/infra/transcriber"
)

var (
	ErrMissingSource   = errors.New("either text or source_ref is required")
	ErrAmbiguousSource = errors.New("text and source_ref are mutually exclusive")
)

type Ingestor interface {
	Ingest(ctx context.Context, projectID uuid.UUID, req *request.CreateTranscriptRequest) (*domainTranscript.Transcript, error)
}

// ingestor accepts either pre-transcribed text or a source ref. With a
// source ref it calls the transcription engine first; the engine output
// then goes through the same sanitization as any other ingested text.
type ingestor struct {
	logger   *logrus.Logger
	repo     domainTranscript.Repository
	projects appProject.Finder
	pipeline ingest.Pipeline
	engine   transcriber.Transcriber
	recorder auditlogs.Recorder
}

func NewIngestor(
	logger *logrus.Logger,
	repo domainTranscript.Repository,
	projects appProject.Finder,
	pipeline ingest.Pipeline,
	engine transcriber.Transcriber,
	recorder auditlogs.Recorder,
) Ingestor {
	return &ingestor{
		logger:   logger,
		repo:     repo,
		projects: projects,
		pipeline: pipeline,
		engine:   engine,
		recorder: recorder,
	}
}

func (i *ingestor) Ingest(
	ctx context.Context,
	projectID uuid.UUID,
	req *request.CreateTranscriptRequest,
) (*domainTranscript.Transcript, error) {
	if req.Text == "" && req.SourceRef == "" {
		return nil, ErrMissingSource
	}
	if req.Text != "" && req.SourceRef != "" {
		return nil, ErrAmbiguousSource
	}

	proj, err := i.projects.Find(ctx, projectID)
	if err != nil {
		return nil, err
	}

	text := req.Text
	engineName := ""
	var duration float64
	if req.SourceRef != "" {
		result, err := i.engine.Transcribe(ctx, req.SourceRef)
		if err != nil {
			return nil, fmt.Errorf("transcription failed: %w", err)
		}
		text = result.Text
		duration = result.DurationSeconds
		engineName = i.engine.Name()
	}

	policy, err := proj.IngestionPolicy()
	if err != nil {
		return nil, err
	}

	outcome, err := i.pipeline.Run(text, policy.SanitizeMinLevel)
	if err != nil {
		if errors.Is(err, ingest.ErrIngestionRejected) {
			i.recorder.Record(ctx, &domainProject.Event{
				ProjectID: proj.ID,
				EventType: domainProject.EventIngestionRejected,
				Actor:     req.Actor,
				Metadata: domain.MetadataJSON{
					"source": "transcript",
				},
			})
		}
		return nil, err
	}

	entity := domainTranscript.Transcript{
		ProjectID:       proj.ID,
		SourceRef:       req.SourceRef,
		DurationSeconds: duration,
		Engine:          engineName,
		MaskedText:      outcome.MaskedText,
		SanitizeLevel:   outcome.Level,
		PiiGateReasons:  outcome.Reasons,
		AIAllowed:       outcome.AIAllowed,
		ExportAllowed:   outcome.ExportAllowed,
	}
	if err := i.repo.Create(ctx, &entity); err != nil {
		i.logger.WithError(err).Error("failed to store transcript")
		return nil, fmt.Errorf("failed to store transcript: %w", err)
	}

	i.recorder.Record(ctx, &domainProject.Event{
		ProjectID: proj.ID,
		EventType: domainProject.EventTranscriptIngested,
		Actor:     req.Actor,
		Metadata: domain.MetadataJSON{
			"transcript_id":  entity.ID.String(),
			"engine":         entity.Engine,
			"sanitize_level": entity.SanitizeLevel,
			"ai_allowed":     entity.AIAllowed,
			"export_allowed": entity.ExportAllowed,
		},
	})

	return &entity, nil
}
