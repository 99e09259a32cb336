package scout

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	domainScout "github.com/arbetsytan/arbetsytan/pkg/domain/scout"
	"github.com/arbetsytan/arbetsytan/pkg/handlers/http/request"
)

type FeedCreator interface {
	Create(ctx context.Context, req *request.CreateFeedRequest) (*domainScout.Feed, error)
}

type feedCreator struct {
	logger *logrus.Logger
	feeds  domainScout.FeedRepository
}

func NewFeedCreator(logger *logrus.Logger, feeds domainScout.FeedRepository) FeedCreator {
	return &feedCreator{
		logger: logger,
		feeds:  feeds,
	}
}

func (c *feedCreator) Create(ctx context.Context, req *request.CreateFeedRequest) (*domainScout.Feed, error) {
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	entity := domainScout.Feed{
		Name:    req.Name,
		URL:     req.URL,
		Enabled: enabled,
	}
	if err := entity.Validate(); err != nil {
		return nil, err
	}

	if err := c.feeds.Create(ctx, &entity); err != nil {
		c.logger.WithError(err).Error("failed to create feed")
		return nil, fmt.Errorf("failed to create feed: %w", err)
	}

	return &entity, nil
}
