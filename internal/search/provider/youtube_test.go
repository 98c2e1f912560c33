package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/lk2023060901/youtube-searcher-backend/internal/search/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchListJSON = `{
  "kind": "youtube#searchListResponse",
  "etag": "etag-abc",
  "nextPageToken": "CAUQAA",
  "regionCode": "US",
  "pageInfo": {"totalResults": 1000000, "resultsPerPage": 2},
  "items": [
    {
      "kind": "youtube#searchResult",
      "etag": "etag-item-1",
      "id": {"kind": "youtube#video", "videoId": "dQw4w9WgXcQ"},
      "snippet": {
        "publishedAt": "2024-05-01T10:00:00Z",
        "channelId": "UC123",
        "title": "First video",
        "description": "first description",
        "channelTitle": "Channel One",
        "thumbnails": {
          "default": {"url": "https://i.ytimg.com/vi/dQw4w9WgXcQ/default.jpg", "width": 120, "height": 90}
        }
      }
    },
    {
      "kind": "youtube#searchResult",
      "etag": "etag-item-2",
      "id": {"kind": "youtube#video", "videoId": "abc12345678"},
      "snippet": {
        "publishedAt": "2024-05-02T10:00:00Z",
        "channelId": "UC456",
        "title": "Second video",
        "description": "second description",
        "channelTitle": "Channel Two"
      }
    }
  ]
}`

const quotaErrorJSON = `{
  "error": {
    "code": 403,
    "message": "The request cannot be completed because you have exceeded your quota.",
    "errors": [{"message": "quotaExceeded", "domain": "youtube.quota", "reason": "quotaExceeded"}]
  }
}`

func newTestProvider(t *testing.T, apiKey, host string) Provider {
	t.Helper()

	p, err := NewYouTubeProvider(&types.ProviderConfig{
		ID:      types.ProviderYouTube,
		Name:    "YouTube Data API",
		APIHost: host,
		APIKey:  apiKey,
	})
	require.NoError(t, err)
	return p
}

func TestYouTubeProviderSearch(t *testing.T) {
	var gotQuery atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query())
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(searchListJSON))
	}))
	defer srv.Close()

	p := newTestProvider(t, "test-key", srv.URL)

	result, err := p.Search(context.Background(), &types.SearchRequest{Subject: "golang tutorials"})
	require.NoError(t, err)

	assert.Equal(t, "youtube#searchListResponse", result.Kind)
	assert.Equal(t, "etag-abc", result.Etag)
	assert.Equal(t, "CAUQAA", result.NextPageToken)
	assert.Equal(t, "US", result.RegionCode)
	assert.Equal(t, int64(1000000), result.TotalResults)
	assert.Equal(t, int64(2), result.ResultsPerPage)

	require.Len(t, result.Items, 2)
	first := result.Items[0]
	assert.Equal(t, "dQw4w9WgXcQ", first.VideoID)
	assert.Equal(t, "First video", first.Title)
	assert.Equal(t, "UC123", first.ChannelID)
	assert.Equal(t, "Channel One", first.ChannelTitle)
	assert.Equal(t, "2024-05-01T10:00:00Z", first.PublishedAt)
	require.Contains(t, first.Thumbnails, "default")
	assert.Equal(t, int64(120), first.Thumbnails["default"].Width)

	// Request carried the normalized defaults
	q := gotQuery.Load().(url.Values)
	assert.Equal(t, "golang tutorials", q.Get("q"))
	assert.Equal(t, "snippet", q.Get("part"))
	assert.Equal(t, "video", q.Get("type"))
	assert.Equal(t, "25", q.Get("maxResults"))
}

func TestYouTubeProviderSearchEmptySubject(t *testing.T) {
	p := newTestProvider(t, "test-key", "http://localhost:1")

	_, err := p.Search(context.Background(), &types.SearchRequest{})
	assert.ErrorIs(t, err, types.ErrEmptySubject)
}

func TestYouTubeProviderQuotaRotation(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&requests, 1)
		w.Header().Set("Content-Type", "application/json")
		if n == 1 {
			// first key is out of quota
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(quotaErrorJSON))
			return
		}
		w.Write([]byte(searchListJSON))
	}))
	defer srv.Close()

	p := newTestProvider(t, "key1, key2", srv.URL)

	result, err := p.Search(context.Background(), &types.SearchRequest{Subject: "golang"})
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, int32(2), atomic.LoadInt32(&requests))
}

func TestYouTubeProviderQuotaExhaustedOnAllKeys(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(quotaErrorJSON))
	}))
	defer srv.Close()

	p := newTestProvider(t, "key1,key2", srv.URL)

	_, err := p.Search(context.Background(), &types.SearchRequest{Subject: "golang"})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrProviderQuota)

	var provErr *types.ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, "HTTP_403", provErr.Code)
}

func TestYouTubeProviderNonQuotaErrorDoesNotRotate(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"code": 400, "message": "invalid argument"}}`))
	}))
	defer srv.Close()

	p := newTestProvider(t, "key1,key2", srv.URL)

	_, err := p.Search(context.Background(), &types.SearchRequest{Subject: "golang"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, types.ErrProviderQuota)
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
}

func TestNewYouTubeProviderNoKeys(t *testing.T) {
	_, err := NewYouTubeProvider(&types.ProviderConfig{
		ID:     types.ProviderYouTube,
		Name:   "YouTube Data API",
		APIKey: " , ",
	})
	assert.ErrorIs(t, err, types.ErrMissingAPIKey)
}

func TestSplitKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitKeys("a, b ,c"))
	assert.Equal(t, []string{"single"}, splitKeys("single"))
	assert.Empty(t, splitKeys(" , "))
}
