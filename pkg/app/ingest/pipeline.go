package ingest

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/arbetsytan/arbetsytan/pkg/domain"
	"github.com/arbetsytan/arbetsytan/pkg/infra/prometheus"
	"github.com/arbetsytan/arbetsytan/pkg/sanitize"
)

// ErrIngestionRejected wraps a paranoid gate violation for call sites.
// The wrapped chain still matches sanitize.ErrParanoidGateViolation;
// handlers map it to a generic 500 and must not leak the reasons.
var ErrIngestionRejected = errors.New("ingestion rejected")

// Outcome carries everything a call site persists about a sanitized
// blob. It is computed once per ingestion and stored verbatim.
type Outcome struct {
	MaskedText    string
	Level         string
	Reasons       domain.ReasonsJSON
	AIAllowed     bool
	ExportAllowed bool
}

type Pipeline interface {
	Run(text string, minLevel string) (Outcome, error)
}

// pipeline is the single path from raw text to storable text: normalize,
// then sanitize with escalation. Every ingesting call site (documents,
// notes, transcripts, feed items) goes through here; nothing else in the
// system is allowed to persist text.
type pipeline struct {
	logger *logrus.Logger
}

func NewPipeline(logger *logrus.Logger) Pipeline {
	return &pipeline{logger: logger}
}

func (p *pipeline) Run(text string, minLevel string) (Outcome, error) {
	min := sanitize.LevelNormal
	if minLevel != "" {
		min = sanitize.Level(minLevel)
	}

	normalized := sanitize.Normalize(text)

	result, err := sanitize.SanitizeFrom(normalized, min)
	if err != nil {
		if errors.Is(err, sanitize.ErrParanoidGateViolation) {
			prometheus.IngestionRejectedTotal.Inc()
			p.logger.Error("paranoid-masked text failed the gate, ingestion aborted")
			return Outcome{}, fmt.Errorf("%w: %w", ErrIngestionRejected, err)
		}
		return Outcome{}, err
	}

	prometheus.SanitizeLevelTotal.WithLabelValues(string(result.LevelUsed)).Inc()

	var reasons domain.ReasonsJSON
	if result.ReasonsByLevel != nil {
		reasons = make(domain.ReasonsJSON, len(result.ReasonsByLevel))
		for level, codes := range result.ReasonsByLevel {
			values := make([]string, len(codes))
			for i, code := range codes {
				values[i] = string(code)
				prometheus.GateReasonTotal.WithLabelValues(string(code)).Inc()
			}
			reasons[string(level)] = values
		}
	}

	return Outcome{
		MaskedText:    result.MaskedText,
		Level:         string(result.LevelUsed),
		Reasons:       reasons,
		AIAllowed:     result.Restrictions.AIAllowed,
		ExportAllowed: result.Restrictions.ExportAllowed,
	}, nil
}
