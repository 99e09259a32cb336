package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/charmap"

	"github.com/arbetsytan/arbetsytan/pkg/app/ingest"
	appProject "github.com/arbetsytan/arbetsytan/pkg/app/project"
	"github.com/arbetsytan/arbetsytan/pkg/domain"
	domainDocument "github.com/arbetsytan/arbetsytan/pkg/domain/document"
	domainProject "github.com/arbetsytan/arbetsytan/pkg/domain/project"
	"github.com/arbetsytan/arbetsytan/pkg/infra/auditlogs"
)

// ErrUnsupportedFileType is returned for uploads that are not plain
// text. Detection is content-based: a pdf renamed to .txt is still
// rejected.
var ErrUnsupportedFileType = errors.New("unsupported file type")

var pdfMagic = []byte("%PDF-")

type Ingestor interface {
	Ingest(ctx context.Context, projectID uuid.UUID, filename string, content []byte, actor string) (*domainDocument.Document, error)
}

type ingestor struct {
	logger   *logrus.Logger
	repo     domainDocument.Repository
	projects appProject.Finder
	pipeline ingest.Pipeline
	recorder auditlogs.Recorder
}

func NewIngestor(
	logger *logrus.Logger,
	repo domainDocument.Repository,
	projects appProject.Finder,
	pipeline ingest.Pipeline,
	recorder auditlogs.Recorder,
) Ingestor {
	return &ingestor{
		logger:   logger,
		repo:     repo,
		projects: projects,
		pipeline: pipeline,
		recorder: recorder,
	}
}

func (i *ingestor) Ingest(
	ctx context.Context,
	projectID uuid.UUID,
	filename string,
	content []byte,
	actor string,
) (*domainDocument.Document, error) {
	proj, err := i.projects.Find(ctx, projectID)
	if err != nil {
		return nil, err
	}

	text, err := decodeUpload(content)
	if err != nil {
		return nil, err
	}

	policy, err := proj.IngestionPolicy()
	if err != nil {
		return nil, err
	}

	outcome, err := i.pipeline.Run(text, policy.SanitizeMinLevel)
	if err != nil {
		if errors.Is(err, ingest.ErrIngestionRejected) {
			// Metadata is restricted to ids, types, levels and flags. The
			// filename is user-supplied and can itself carry PII, so it is
			// kept out of the audit log.
			i.recorder.Record(ctx, &domainProject.Event{
				ProjectID: proj.ID,
				EventType: domainProject.EventIngestionRejected,
				Actor:     actor,
				Metadata: domain.MetadataJSON{
					"source": "document",
				},
			})
		}
		return nil, err
	}

	entity := domainDocument.Document{
		ProjectID:      proj.ID,
		Filename:       filename,
		FileType:       domainDocument.FileTypeTxt,
		MaskedText:     outcome.MaskedText,
		SanitizeLevel:  outcome.Level,
		PiiGateReasons: outcome.Reasons,
		AIAllowed:      outcome.AIAllowed,
		ExportAllowed:  outcome.ExportAllowed,
	}
	if err := i.repo.Create(ctx, &entity); err != nil {
		i.logger.WithError(err).Error("failed to store document")
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	i.recorder.Record(ctx, &domainProject.Event{
		ProjectID: proj.ID,
		EventType: domainProject.EventDocumentIngested,
		Actor:     actor,
		Metadata: domain.MetadataJSON{
			"document_id":    entity.ID.String(),
			"sanitize_level": entity.SanitizeLevel,
			"ai_allowed":     entity.AIAllowed,
			"export_allowed": entity.ExportAllowed,
		},
	})

	return &entity, nil
}

// decodeUpload turns upload bytes into text. Valid UTF-8 is taken as is;
// anything else is decoded as Latin-1, which cannot fail and covers the
// legacy court exports still in circulation.
func decodeUpload(content []byte) (string, error) {
	if bytes.HasPrefix(content, pdfMagic) {
		return "", fmt.Errorf("%w: pdf", ErrUnsupportedFileType)
	}
	if bytes.IndexByte(content, 0x00) >= 0 {
		return "", fmt.Errorf("%w: binary content", ErrUnsupportedFileType)
	}

	if utf8.Valid(content) {
		return string(content), nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(content)
	if err != nil {
		return "", fmt.Errorf("failed to decode upload: %w", err)
	}
	return string(decoded), nil
}
