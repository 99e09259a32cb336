package scout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainScout "github.com/arbetsytan/arbetsytan/pkg/domain/scout"
	"github.com/arbetsytan/arbetsytan/pkg/handlers/http/request"
)

func TestFeedCreator_Create_DefaultsEnabled(t *testing.T) {
	feeds := new(mockFeedRepository)
	feeds.On("Create", mock.Anything, mock.MatchedBy(func(feed *domainScout.Feed) bool {
		return feed.Name == "Domstolsnytt" && feed.Enabled
	})).Return(nil)

	creator := NewFeedCreator(testRefresherLogger(), feeds)

	feed, err := creator.Create(context.Background(), &request.CreateFeedRequest{
		Name: "Domstolsnytt",
		URL:  "https://example.org/rss",
	})

	require.NoError(t, err)
	assert.True(t, feed.Enabled)
	feeds.AssertExpectations(t)
}

func TestFeedCreator_Create_HonorsDisabledFlag(t *testing.T) {
	feeds := new(mockFeedRepository)
	feeds.On("Create", mock.Anything, mock.Anything).Return(nil)

	disabled := false
	creator := NewFeedCreator(testRefresherLogger(), feeds)

	feed, err := creator.Create(context.Background(), &request.CreateFeedRequest{
		Name:    "Domstolsnytt",
		URL:     "https://example.org/rss",
		Enabled: &disabled,
	})

	require.NoError(t, err)
	assert.False(t, feed.Enabled)
}

func TestFeedCreator_Create_RejectsNonHTTPURL(t *testing.T) {
	feeds := new(mockFeedRepository)

	creator := NewFeedCreator(testRefresherLogger(), feeds)

	_, err := creator.Create(context.Background(), &request.CreateFeedRequest{
		Name: "Domstolsnytt",
		URL:  "ftp://example.org/rss",
	})

	require.Error(t, err)
	feeds.AssertNotCalled(t, "Create")
}

func TestFeedCreator_Create_RejectsMissingName(t *testing.T) {
	feeds := new(mockFeedRepository)

	creator := NewFeedCreator(testRefresherLogger(), feeds)

	_, err := creator.Create(context.Background(), &request.CreateFeedRequest{
		URL: "https://example.org/rss",
	})

	require.Error(t, err)
	feeds.AssertNotCalled(t, "Create")
}

func TestFeedCreator_Create_RepositoryFailure(t *testing.T) {
	feeds := new(mockFeedRepository)
	feeds.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	creator := NewFeedCreator(testRefresherLogger(), feeds)

	_, err := creator.Create(context.Background(), &request.CreateFeedRequest{
		Name: "Domstolsnytt",
		URL:  "https://example.org/rss",
	})

	require.Error(t, err)
}
