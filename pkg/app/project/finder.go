package project

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	domainProject "github.com/arbetsytan/arbetsytan/pkg/domain/project"
	"github.com/arbetsytan/arbetsytan/pkg/infra/cache"
)

const projectCacheTTL = 5 * time.Minute

type Finder interface {
	Find(ctx context.Context, id uuid.UUID) (*domainProject.Project, error)
}

// finder reads projects through a redis cache. The cache only ever holds
// project rows, which contain no ingested text.
type finder struct {
	repo   domainProject.Repository
	cache  cache.Client
	logger *logrus.Logger
}

func NewFinder(
	repository domainProject.Repository,
	c cache.Client,
	logger *logrus.Logger,
) Finder {
	return &finder{
		repo:   repository,
		cache:  c,
		logger: logger,
	}
}

func (f *finder) Find(ctx context.Context, id uuid.UUID) (*domainProject.Project, error) {
	key := projectCacheKey(id)

	if cached, err := f.cache.Get(ctx, key); err == nil {
		var entity domainProject.Project
		if err := json.Unmarshal([]byte(cached), &entity); err == nil {
			return &entity, nil
		}
		f.logger.WithField("project_id", id).Debug("discarding malformed cached project")
	}

	entity, err := f.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(entity); err == nil {
		if err := f.cache.Set(ctx, key, string(data), projectCacheTTL); err != nil {
			f.logger.WithError(err).Debug("failed to cache project")
		}
	}

	return entity, nil
}

func projectCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("project:%s", id)
}
