package brief

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	appProject "github.com/arbetsytan/arbetsytan/pkg/app/project"
	domainDocument "github.com/arbetsytan/arbetsytan/pkg/domain/document"
	domainNote "github.com/arbetsytan/arbetsytan/pkg/domain/note"
	domainTranscript "github.com/arbetsytan/arbetsytan/pkg/domain/transcript"
	"github.com/arbetsytan/arbetsytan/pkg/infra/briefcompiler"
)

// ErrNoMaterial is returned when a project has nothing the AI engine is
// allowed to see.
var ErrNoMaterial = errors.New("no ai-eligible material in project")

const materialPageSize = 200

// Result is a compiled brief. SourceCount is how many blobs went into
// the prompt; blobs with ai_allowed false are never included.
type Result struct {
	Brief       string `json:"brief"`
	Engine      string `json:"engine"`
	SourceCount int    `json:"source_count"`
}

type Compiler interface {
	Compile(ctx context.Context, projectID uuid.UUID, instructions string) (*Result, error)
}

type compiler struct {
	logger      *logrus.Logger
	projects    appProject.Finder
	documents   domainDocument.Repository
	notes       domainNote.Repository
	transcripts domainTranscript.Repository
	provider    briefcompiler.Provider
}

func NewCompiler(
	logger *logrus.Logger,
	projects appProject.Finder,
	documents domainDocument.Repository,
	notes domainNote.Repository,
	transcripts domainTranscript.Repository,
	provider briefcompiler.Provider,
) Compiler {
	return &compiler{
		logger:      logger,
		projects:    projects,
		documents:   documents,
		notes:       notes,
		transcripts: transcripts,
		provider:    provider,
	}
}

func (c *compiler) Compile(ctx context.Context, projectID uuid.UUID, instructions string) (*Result, error) {
	proj, err := c.projects.Find(ctx, projectID)
	if err != nil {
		return nil, err
	}

	blocks, err := c.collectMaterial(ctx, proj.ID)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, ErrNoMaterial
	}

	prompt := buildPrompt(proj.Name, instructions, blocks)

	brief, err := c.provider.Compile(ctx, prompt)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"project_id": proj.ID,
			"engine":     c.provider.Name(),
		}).WithError(err).Error("brief compilation failed")
		return nil, fmt.Errorf("brief compilation failed: %w", err)
	}

	return &Result{
		Brief:       brief,
		Engine:      c.provider.Name(),
		SourceCount: len(blocks),
	}, nil
}

// collectMaterial gathers the masked text of every blob in the project
// that is cleared for AI use. Only masked text leaves this process.
func (c *compiler) collectMaterial(ctx context.Context, projectID uuid.UUID) ([]string, error) {
	var blocks []string

	for offset := 0; ; offset += materialPageSize {
		page, err := c.documents.ListByProject(ctx, projectID, offset, materialPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list documents: %w", err)
		}
		for _, d := range page {
			if d.AIAllowed && d.MaskedText != "" {
				blocks = append(blocks, fmt.Sprintf("Dokument %q:\n%s", d.Filename, d.MaskedText))
			}
		}
		if len(page) < materialPageSize {
			break
		}
	}

	for offset := 0; ; offset += materialPageSize {
		page, err := c.notes.ListByProject(ctx, projectID, offset, materialPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list notes: %w", err)
		}
		for _, n := range page {
			if n.AIAllowed && n.MaskedText != "" {
				blocks = append(blocks, fmt.Sprintf("Anteckning (%s):\n%s",
					n.CreatedAt.Format("2006-01-02"), n.MaskedText))
			}
		}
		if len(page) < materialPageSize {
			break
		}
	}

	for offset := 0; ; offset += materialPageSize {
		page, err := c.transcripts.ListByProject(ctx, projectID, offset, materialPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list transcripts: %w", err)
		}
		for _, t := range page {
			if t.AIAllowed && t.MaskedText != "" {
				blocks = append(blocks, fmt.Sprintf("Transkript (%s):\n%s",
					t.CreatedAt.Format("2006-01-02"), t.MaskedText))
			}
		}
		if len(page) < materialPageSize {
			break
		}
	}

	return blocks, nil
}

func buildPrompt(projectName, instructions string, blocks []string) string {
	var b strings.Builder
	b.WriteString("Du är researchassistent på en nyhetsredaktion. ")
	b.WriteString("Sammanfatta materialet nedan till en arbetsbrief. ")
	b.WriteString("Materialet är maskerat: platshållare som [NAME] och [PHONE] ska lämnas som de är.\n\n")
	fmt.Fprintf(&b, "Projekt: %s\n", projectName)
	if instructions != "" {
		fmt.Fprintf(&b, "Instruktioner: %s\n", instructions)
	}
	b.WriteString("\nMaterial:\n\n")
	for i, block := range blocks {
		fmt.Fprintf(&b, "--- Källa %d ---\n%s\n\n", i+1, block)
	}
	return b.String()
}
