package scout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/arbetsytan/arbetsytan/pkg/app/ingest"
	"github.com/arbetsytan/arbetsytan/pkg/domain"
	domainScout "github.com/arbetsytan/arbetsytan/pkg/domain/scout"
	"github.com/arbetsytan/arbetsytan/pkg/infra/cache"
	"github.com/arbetsytan/arbetsytan/pkg/infra/feedfetch"
	"github.com/arbetsytan/arbetsytan/pkg/sanitize"
)

// Fetcher retrieves the raw body of a feed URL. Satisfied by
// feedfetch.Fetcher.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// FeedResult is the per-feed outcome of a refresh sweep.
type FeedResult struct {
	FeedID    string `json:"feed_id"`
	FeedName  string `json:"feed_name"`
	Imported  int    `json:"imported"`
	Duplicate int    `json:"duplicate"`
	Throttled bool   `json:"throttled"`
	Error     string `json:"error,omitempty"`
}

type Refresher interface {
	RefreshAll(ctx context.Context) ([]FeedResult, error)
}

// refresher sweeps every enabled feed: fetch, parse, sanitize each new
// entry, store. Feeds are fetched concurrently up to maxFetches, and a
// redis reservation keeps each feed from being fetched more than once
// per throttle window across all replicas. A failing feed never aborts
// the sweep.
type refresher struct {
	logger     *logrus.Logger
	feeds      domainScout.FeedRepository
	items      domainScout.ItemRepository
	fetcher    Fetcher
	pipeline   ingest.Pipeline
	cache      cache.Client
	maxFetches int
	throttle   time.Duration
}

func NewRefresher(
	logger *logrus.Logger,
	feeds domainScout.FeedRepository,
	items domainScout.ItemRepository,
	fetcher Fetcher,
	pipeline ingest.Pipeline,
	c cache.Client,
	maxFetches int,
	throttle time.Duration,
) Refresher {
	if maxFetches < 1 {
		maxFetches = 1
	}
	return &refresher{
		logger:     logger,
		feeds:      feeds,
		items:      items,
		fetcher:    fetcher,
		pipeline:   pipeline,
		cache:      c,
		maxFetches: maxFetches,
		throttle:   throttle,
	}
}

func (r *refresher) RefreshAll(ctx context.Context) ([]FeedResult, error) {
	enabled, err := r.feeds.ListEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list feeds: %w", err)
	}

	results := make([]FeedResult, len(enabled))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.maxFetches)
	for idx, feed := range enabled {
		idx, feed := idx, feed
		g.Go(func() error {
			result := r.refreshFeed(gctx, &feed)
			mu.Lock()
			results[idx] = result
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (r *refresher) refreshFeed(ctx context.Context, feed *domainScout.Feed) FeedResult {
	result := FeedResult{
		FeedID:   feed.ID.String(),
		FeedName: feed.Name,
	}
	log := r.logger.WithFields(logrus.Fields{
		"feed_id":   feed.ID,
		"feed_name": feed.Name,
	})

	ok, err := r.cache.AcquireFeedSlot(ctx, feed.ID.String(), r.throttle)
	if err != nil {
		log.WithError(err).Error("feed throttle check failed")
		result.Error = "throttle check failed"
		return result
	}
	if !ok {
		result.Throttled = true
		return result
	}

	body, err := r.fetcher.Fetch(ctx, feed.URL)
	if err != nil {
		log.WithError(err).Error("feed fetch failed")
		result.Error = "fetch failed"
		return result
	}

	entries, err := feedfetch.Parse(body)
	if err != nil {
		log.WithError(err).Error("feed parse failed")
		result.Error = "parse failed"
		return result
	}

	for _, entry := range entries {
		imported, err := r.importEntry(ctx, feed, entry)
		if err != nil {
			if errors.Is(err, domainScout.ErrDuplicateItem) {
				result.Duplicate++
				continue
			}
			log.WithError(err).Error("feed entry import failed")
			continue
		}
		if imported {
			result.Imported++
		}
	}

	log.WithFields(logrus.Fields{
		"imported":  result.Imported,
		"duplicate": result.Duplicate,
	}).Info("feed refreshed")
	return result
}

func (r *refresher) importEntry(
	ctx context.Context,
	feed *domainScout.Feed,
	entry feedfetch.Entry,
) (bool, error) {
	// Title and summary both pass through the full pipeline: only masked
	// text reaches storage. An entry whose paranoid masking still trips
	// the gate is dropped, not stored. Unlike manual ingestion there is
	// no caller to report back to.
	title, err := r.pipeline.Run(feedfetch.StripHTML(entry.Title), "")
	if err != nil {
		if errors.Is(err, ingest.ErrIngestionRejected) {
			return false, nil
		}
		return false, err
	}
	summary, err := r.pipeline.Run(feedfetch.StripHTML(entry.Summary), "")
	if err != nil {
		if errors.Is(err, ingest.ErrIngestionRejected) {
			return false, nil
		}
		return false, err
	}

	level := summary.Level
	if sanitize.Level(title.Level).AtLeast(sanitize.Level(level)) {
		level = title.Level
	}

	item := domainScout.Item{
		FeedID:         feed.ID,
		Title:          title.MaskedText,
		Link:           entry.Link,
		PublishedAt:    entry.Published,
		GuidHash:       domainScout.GuidHash(feed.URL, entry.StableID),
		MaskedSummary:  summary.MaskedText,
		SanitizeLevel:  level,
		PiiGateReasons: mergeReasons(summary.Reasons, title.Reasons),
		AIAllowed:      summary.AIAllowed && title.AIAllowed,
		ExportAllowed:  summary.ExportAllowed && title.ExportAllowed,
	}
	if err := r.items.Insert(ctx, &item); err != nil {
		return false, err
	}
	return true, nil
}

// mergeReasons unions the gate reasons of the summary and title runs,
// keyed by attempted level.
func mergeReasons(a, b domain.ReasonsJSON) domain.ReasonsJSON {
	if len(b) == 0 {
		return a
	}
	if len(a) == 0 {
		return b
	}
	merged := domain.ReasonsJSON{}
	for lvl, codes := range a {
		merged[lvl] = append([]string(nil), codes...)
	}
	for lvl, codes := range b {
		for _, code := range codes {
			if !containsReason(merged[lvl], code) {
				merged[lvl] = append(merged[lvl], code)
			}
		}
	}
	return merged
}

func containsReason(codes []string, code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}
