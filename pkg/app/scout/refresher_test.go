package scout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/arbetsytan/arbetsytan/pkg/app/ingest"
	domainScout "github.com/arbetsytan/arbetsytan/pkg/domain/scout"
)

type mockFeedRepository struct {
	mock.Mock
}

func (m *mockFeedRepository) Create(ctx context.Context, feed *domainScout.Feed) error {
	args := m.Called(ctx, feed)
	return args.Error(0)
}

func (m *mockFeedRepository) Get(ctx context.Context, id uuid.UUID) (*domainScout.Feed, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	feed, ok := args.Get(0).(*domainScout.Feed)
	if !ok {
		return nil, args.Error(1)
	}
	return feed, args.Error(1)
}

func (m *mockFeedRepository) List(ctx context.Context, offset, limit int) ([]domainScout.Feed, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	feeds, ok := args.Get(0).([]domainScout.Feed)
	if !ok {
		return nil, args.Error(1)
	}
	return feeds, args.Error(1)
}

func (m *mockFeedRepository) ListEnabled(ctx context.Context) ([]domainScout.Feed, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	feeds, ok := args.Get(0).([]domainScout.Feed)
	if !ok {
		return nil, args.Error(1)
	}
	return feeds, args.Error(1)
}

type mockItemRepository struct {
	mock.Mock
}

func (m *mockItemRepository) Insert(ctx context.Context, item *domainScout.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockItemRepository) ListByFeed(
	ctx context.Context,
	feedID uuid.UUID,
	offset, limit int,
) ([]domainScout.Item, error) {
	args := m.Called(ctx, feedID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	items, ok := args.Get(0).([]domainScout.Item)
	if !ok {
		return nil, args.Error(1)
	}
	return items, args.Error(1)
}

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	args := m.Called(ctx, rawURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	body, ok := args.Get(0).([]byte)
	if !ok {
		return nil, args.Error(1)
	}
	return body, args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *mockCache) AcquireFeedSlot(ctx context.Context, feedID string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, feedID, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *mockCache) RedisClient() *redis.Client {
	return nil
}

const refresherRSSBody = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Domstolsnytt</title>
    <item>
      <title>Dom i hyresmålet</title>
      <link>https://example.org/dom-1</link>
      <guid>dom-1</guid>
      <description>&lt;p&gt;Ring 070-123 45 67 för kommentar.&lt;/p&gt;</description>
    </item>
    <item>
      <title>Ny förhandling utsatt</title>
      <link>https://example.org/dom-2</link>
      <guid>dom-2</guid>
      <description>Förhandlingen fortsätter i mars.</description>
    </item>
  </channel>
</rss>`

func testRefresherLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestRefresher_ImportsAndMasksEntries(t *testing.T) {
	feeds := new(mockFeedRepository)
	items := new(mockItemRepository)
	fetcher := new(mockFetcher)
	c := new(mockCache)

	feed := domainScout.Feed{
		ID:      uuid.New(),
		Name:    "Domstolsnytt",
		URL:     "https://example.org/rss",
		Enabled: true,
	}
	feeds.On("ListEnabled", mock.Anything).Return([]domainScout.Feed{feed}, nil)
	c.On("AcquireFeedSlot", mock.Anything, feed.ID.String(), 5*time.Minute).Return(true, nil)
	fetcher.On("Fetch", mock.Anything, feed.URL).Return([]byte(refresherRSSBody), nil)
	items.On("Insert", mock.Anything, mock.MatchedBy(func(item *domainScout.Item) bool {
		return item.Title == "Dom i hyresmålet" &&
			item.MaskedSummary == "Ring [PHONE] för kommentar." &&
			item.GuidHash == domainScout.GuidHash(feed.URL, "dom-1")
	})).Return(nil).Once()
	items.On("Insert", mock.Anything, mock.MatchedBy(func(item *domainScout.Item) bool {
		return item.Title == "Ny förhandling utsatt"
	})).Return(domainScout.ErrDuplicateItem).Once()

	r := NewRefresher(testRefresherLogger(), feeds, items, fetcher,
		ingest.NewPipeline(testRefresherLogger()), c, 4, 5*time.Minute)

	results, err := r.RefreshAll(context.Background())

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Imported)
	assert.Equal(t, 1, results[0].Duplicate)
	assert.False(t, results[0].Throttled)
	assert.Empty(t, results[0].Error)
	items.AssertExpectations(t)
}

const titlePiiRSSBody = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Tipsflödet</title>
    <item>
      <title>Ring 070-123 45 67 för kommentar</title>
      <link>https://example.org/tips-1</link>
      <guid>tips-1</guid>
      <description>Förhandlingen fortsätter i mars.</description>
    </item>
    <item>
      <title>Ärende 5551234567 öppnat igen</title>
      <link>https://example.org/tips-2</link>
      <guid>tips-2</guid>
      <description>Domen överklagas.</description>
    </item>
  </channel>
</rss>`

func TestRefresher_MasksPiiInTitles(t *testing.T) {
	feeds := new(mockFeedRepository)
	items := new(mockItemRepository)
	fetcher := new(mockFetcher)
	c := new(mockCache)

	feed := domainScout.Feed{
		ID:      uuid.New(),
		Name:    "Tipsflödet",
		URL:     "https://example.org/tips.rss",
		Enabled: true,
	}
	feeds.On("ListEnabled", mock.Anything).Return([]domainScout.Feed{feed}, nil)
	c.On("AcquireFeedSlot", mock.Anything, feed.ID.String(), mock.Anything).Return(true, nil)
	fetcher.On("Fetch", mock.Anything, feed.URL).Return([]byte(titlePiiRSSBody), nil)
	items.On("Insert", mock.Anything, mock.MatchedBy(func(item *domainScout.Item) bool {
		return item.Title == "Ring [PHONE] för kommentar" &&
			item.SanitizeLevel == "normal"
	})).Return(nil).Once()
	// The bare ten-digit cluster in the title escalates to strict, and
	// the item carries the stricter of the two levels.
	items.On("Insert", mock.Anything, mock.MatchedBy(func(item *domainScout.Item) bool {
		return item.Title == "Ärende [NUM] öppnat igen" &&
			item.MaskedSummary == "Domen överklagas." &&
			item.SanitizeLevel == "strict" &&
			item.AIAllowed
	})).Return(nil).Once()

	r := NewRefresher(testRefresherLogger(), feeds, items, fetcher,
		ingest.NewPipeline(testRefresherLogger()), c, 4, 5*time.Minute)

	results, err := r.RefreshAll(context.Background())

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 2, results[0].Imported)
	items.AssertExpectations(t)
}

func TestRefresher_ThrottledFeedIsSkipped(t *testing.T) {
	feeds := new(mockFeedRepository)
	items := new(mockItemRepository)
	fetcher := new(mockFetcher)
	c := new(mockCache)

	feed := domainScout.Feed{ID: uuid.New(), Name: "Domstolsnytt", URL: "https://example.org/rss"}
	feeds.On("ListEnabled", mock.Anything).Return([]domainScout.Feed{feed}, nil)
	c.On("AcquireFeedSlot", mock.Anything, feed.ID.String(), mock.Anything).Return(false, nil)

	r := NewRefresher(testRefresherLogger(), feeds, items, fetcher,
		ingest.NewPipeline(testRefresherLogger()), c, 4, 5*time.Minute)

	results, err := r.RefreshAll(context.Background())

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Throttled)
	fetcher.AssertNotCalled(t, "Fetch")
}

func TestRefresher_FailingFeedDoesNotAbortSweep(t *testing.T) {
	feeds := new(mockFeedRepository)
	items := new(mockItemRepository)
	fetcher := new(mockFetcher)
	c := new(mockCache)

	broken := domainScout.Feed{ID: uuid.New(), Name: "Trasig", URL: "https://broken.example.org/rss"}
	healthy := domainScout.Feed{ID: uuid.New(), Name: "Frisk", URL: "https://ok.example.org/rss"}
	feeds.On("ListEnabled", mock.Anything).Return([]domainScout.Feed{broken, healthy}, nil)
	c.On("AcquireFeedSlot", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	fetcher.On("Fetch", mock.Anything, broken.URL).Return(nil, errors.New("connection refused"))
	fetcher.On("Fetch", mock.Anything, healthy.URL).Return([]byte(refresherRSSBody), nil)
	items.On("Insert", mock.Anything, mock.Anything).Return(nil)

	r := NewRefresher(testRefresherLogger(), feeds, items, fetcher,
		ingest.NewPipeline(testRefresherLogger()), c, 1, 5*time.Minute)

	results, err := r.RefreshAll(context.Background())

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "fetch failed", results[0].Error)
	assert.Equal(t, 2, results[1].Imported)
}
