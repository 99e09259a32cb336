package auditlogs

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/arbetsytan/arbetsytan/pkg/domain/project"
)

// Exporter ships audit events to an external sink. Implementations
// receive the same metadata-only payload that is persisted.
type Exporter interface {
	Name() string
	Handle(ctx context.Context, event *project.Event) error
	Close()
}

type Recorder interface {
	Record(ctx context.Context, event *project.Event)
	Close() error
}

// recorder persists events to the append-only project_events table and
// forwards them to the optional exporter on a background worker. Audit
// writes never fail a request: errors are logged and dropped.
type recorder struct {
	logger   *logrus.Logger
	events   project.EventRepository
	exporter Exporter
	tasks    chan func()
	done     chan struct{}
}

func NewRecorder(logger *logrus.Logger, events project.EventRepository, exporter Exporter) Recorder {
	r := &recorder{
		logger:   logger,
		events:   events,
		exporter: exporter,
		tasks:    make(chan func(), 1000),
		done:     make(chan struct{}),
	}
	go r.worker()
	return r
}

func (r *recorder) Record(ctx context.Context, event *project.Event) {
	if err := r.events.Append(ctx, event); err != nil {
		r.logger.WithFields(logrus.Fields{
			"project_id": event.ProjectID,
			"event_type": event.EventType,
		}).WithError(err).Error("failed to persist audit event")
		return
	}

	if r.exporter == nil {
		return
	}

	exported := *event
	select {
	case r.tasks <- func() {
		if err := r.exporter.Handle(context.Background(), &exported); err != nil {
			r.logger.WithFields(logrus.Fields{
				"exporter":   r.exporter.Name(),
				"event_type": exported.EventType,
			}).WithError(err).Error("failed to export audit event")
		}
	}:
	default:
		r.logger.Warn("audit export queue full, dropping export task")
	}
}

func (r *recorder) worker() {
	for {
		select {
		case task := <-r.tasks:
			task()
		case <-r.done:
			return
		}
	}
}

func (r *recorder) Close() error {
	close(r.done)
	if r.exporter != nil {
		r.exporter.Close()
	}
	return nil
}
