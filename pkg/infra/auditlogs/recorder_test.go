package auditlogs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbetsytan/arbetsytan/pkg/domain"
	"github.com/arbetsytan/arbetsytan/pkg/domain/project"
)

type stubEventRepository struct {
	mu       sync.Mutex
	appended []project.Event
	err      error
}

func (s *stubEventRepository) Append(ctx context.Context, event *project.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.appended = append(s.appended, *event)
	return nil
}

func (s *stubEventRepository) ListByProject(
	ctx context.Context,
	projectID uuid.UUID,
	offset, limit int,
) ([]project.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appended, nil
}

type stubExporter struct {
	mu      sync.Mutex
	handled []project.Event
}

func (s *stubExporter) Name() string { return "stub" }

func (s *stubExporter) Handle(ctx context.Context, event *project.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handled = append(s.handled, *event)
	return nil
}

func (s *stubExporter) Close() {}

func (s *stubExporter) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handled)
}

func TestRecorder_PersistsAndExports(t *testing.T) {
	repo := &stubEventRepository{}
	exporter := &stubExporter{}
	r := NewRecorder(logrus.New(), repo, exporter)
	defer func() { _ = r.Close() }()

	projectID := uuid.New()
	r.Record(context.Background(), &project.Event{
		ProjectID: projectID,
		EventType: project.EventDocumentIngested,
		Actor:     "editor",
		Metadata:  domain.MetadataJSON{"sanitize_level": "strict"},
	})

	require.Len(t, repo.appended, 1)
	assert.Equal(t, project.EventDocumentIngested, repo.appended[0].EventType)

	require.Eventually(t, func() bool {
		return exporter.count() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestRecorder_PersistFailureSkipsExport(t *testing.T) {
	repo := &stubEventRepository{err: errors.New("db down")}
	exporter := &stubExporter{}
	r := NewRecorder(logrus.New(), repo, exporter)
	defer func() { _ = r.Close() }()

	r.Record(context.Background(), &project.Event{
		ProjectID: uuid.New(),
		EventType: project.EventNoteCreated,
	})

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, exporter.count())
}

func TestRecorder_NilExporter(t *testing.T) {
	repo := &stubEventRepository{}
	r := NewRecorder(logrus.New(), repo, nil)
	defer func() { _ = r.Close() }()

	r.Record(context.Background(), &project.Event{
		ProjectID: uuid.New(),
		EventType: project.EventProjectCreated,
	})

	assert.Len(t, repo.appended, 1)
}
