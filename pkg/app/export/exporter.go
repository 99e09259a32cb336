package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	appProject "github.com/arbetsytan/arbetsytan/pkg/app/project"
	"github.com/arbetsytan/arbetsytan/pkg/domain"
	domainDocument "github.com/arbetsytan/arbetsytan/pkg/domain/document"
	domainNote "github.com/arbetsytan/arbetsytan/pkg/domain/note"
	domainProject "github.com/arbetsytan/arbetsytan/pkg/domain/project"
	domainTranscript "github.com/arbetsytan/arbetsytan/pkg/domain/transcript"
	"github.com/arbetsytan/arbetsytan/pkg/infra/auditlogs"
)

// listPageSize bounds each repository page while assembling an export.
const listPageSize = 200

// Result is a generated export. Excluded counts how many blobs were
// withheld because export is not allowed for them; their content never
// appears in Markdown, only the count does.
type Result struct {
	Markdown    string `json:"markdown"`
	Included    int    `json:"included"`
	Excluded    int    `json:"excluded"`
	GeneratedAt string `json:"generated_at"`
}

type Exporter interface {
	Export(ctx context.Context, projectID uuid.UUID, actor string) (*Result, error)
}

type exporter struct {
	logger      *logrus.Logger
	projects    appProject.Finder
	documents   domainDocument.Repository
	notes       domainNote.Repository
	transcripts domainTranscript.Repository
	recorder    auditlogs.Recorder
}

func NewExporter(
	logger *logrus.Logger,
	projects appProject.Finder,
	documents domainDocument.Repository,
	notes domainNote.Repository,
	transcripts domainTranscript.Repository,
	recorder auditlogs.Recorder,
) Exporter {
	return &exporter{
		logger:      logger,
		projects:    projects,
		documents:   documents,
		notes:       notes,
		transcripts: transcripts,
		recorder:    recorder,
	}
}

func (e *exporter) Export(ctx context.Context, projectID uuid.UUID, actor string) (*Result, error) {
	proj, err := e.projects.Find(ctx, projectID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var b strings.Builder
	included, excluded := 0, 0

	fmt.Fprintf(&b, "# %s\n\n", proj.Name)
	if proj.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", proj.Description)
	}
	fmt.Fprintf(&b, "Genererad %s\n", now.Format("2006-01-02 15:04 UTC"))

	docs, err := e.collectDocuments(ctx, proj.ID)
	if err != nil {
		return nil, err
	}
	if len(docs) > 0 {
		b.WriteString("\n## Dokument\n")
		for _, d := range docs {
			if !d.ExportAllowed {
				excluded++
				continue
			}
			included++
			fmt.Fprintf(&b, "\n### %s\n\n%s\n", d.Filename, d.MaskedText)
		}
	}

	notes, err := e.collectNotes(ctx, proj.ID)
	if err != nil {
		return nil, err
	}
	if len(notes) > 0 {
		b.WriteString("\n## Anteckningar\n")
		for _, n := range notes {
			if !n.ExportAllowed {
				excluded++
				continue
			}
			included++
			fmt.Fprintf(&b, "\n### Anteckning %s\n\n%s\n",
				n.CreatedAt.Format("2006-01-02 15:04"), n.MaskedText)
		}
	}

	transcripts, err := e.collectTranscripts(ctx, proj.ID)
	if err != nil {
		return nil, err
	}
	if len(transcripts) > 0 {
		b.WriteString("\n## Transkript\n")
		for _, t := range transcripts {
			if !t.ExportAllowed {
				excluded++
				continue
			}
			included++
			fmt.Fprintf(&b, "\n### Transkript %s\n\n%s\n",
				t.CreatedAt.Format("2006-01-02 15:04"), t.MaskedText)
		}
	}

	if excluded > 0 {
		fmt.Fprintf(&b, "\n---\n\n%d poster uteslutna ur exporten.\n", excluded)
	}

	e.recorder.Record(ctx, &domainProject.Event{
		ProjectID: proj.ID,
		EventType: domainProject.EventExportGenerated,
		Actor:     actor,
		Metadata: domain.MetadataJSON{
			"included": included,
			"excluded": excluded,
		},
	})

	return &Result{
		Markdown:    b.String(),
		Included:    included,
		Excluded:    excluded,
		GeneratedAt: now.Format(time.RFC3339),
	}, nil
}

func (e *exporter) collectDocuments(ctx context.Context, projectID uuid.UUID) ([]domainDocument.Document, error) {
	var all []domainDocument.Document
	for offset := 0; ; offset += listPageSize {
		page, err := e.documents.ListByProject(ctx, projectID, offset, listPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list documents: %w", err)
		}
		all = append(all, page...)
		if len(page) < listPageSize {
			return all, nil
		}
	}
}

func (e *exporter) collectNotes(ctx context.Context, projectID uuid.UUID) ([]domainNote.Note, error) {
	var all []domainNote.Note
	for offset := 0; ; offset += listPageSize {
		page, err := e.notes.ListByProject(ctx, projectID, offset, listPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list notes: %w", err)
		}
		all = append(all, page...)
		if len(page) < listPageSize {
			return all, nil
		}
	}
}

func (e *exporter) collectTranscripts(ctx context.Context, projectID uuid.UUID) ([]domainTranscript.Transcript, error) {
	var all []domainTranscript.Transcript
	for offset := 0; ; offset += listPageSize {
		page, err := e.transcripts.ListByProject(ctx, projectID, offset, listPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list transcripts: %w", err)
		}
		all = append(all, page...)
		if len(page) < listPageSize {
			return all, nil
		}
	}
}
