package biz

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lk2023060901/youtube-searcher-backend/internal/pkg/logger"
	"github.com/lk2023060901/youtube-searcher-backend/internal/search/types"
	storagebiz "github.com/lk2023060901/youtube-searcher-backend/internal/storage/biz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	gotRequest *types.SearchRequest
	result     *types.SearchResult
	err        error
}

func (f *fakeProvider) Search(ctx context.Context, req *types.SearchRequest) (*types.SearchResult, error) {
	f.gotRequest = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeProvider) GetID() types.ProviderID { return "fake" }

func (f *fakeProvider) GetName() string { return "Fake" }

func (f *fakeProvider) Validate() error { return nil }

type fakeStore struct {
	gotQuery  *storagebiz.QueryRecord
	gotResult *types.SearchResult
	err       error
}

func (f *fakeStore) SaveQueryResponse(ctx context.Context, query *storagebiz.QueryRecord, result *types.SearchResult) (*storagebiz.Response, error) {
	f.gotQuery = query
	f.gotResult = result
	if f.err != nil {
		return nil, f.err
	}
	return &storagebiz.Response{ResponseID: "resp-1", Subject: query.Subject}, nil
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "console"})
	require.NoError(t, err)
	return log
}

func searchResult(items int) *types.SearchResult {
	result := &types.SearchResult{
		Kind:           "youtube#searchListResponse",
		Etag:           "etag",
		TotalResults:   500,
		ResultsPerPage: int64(items),
	}
	for i := 0; i < items; i++ {
		result.Items = append(result.Items, &types.VideoItem{VideoID: "vid"})
	}
	return result
}

func TestSearchReturnsStoredResponseAndItemCount(t *testing.T) {
	p := &fakeProvider{result: searchResult(7)}
	store := &fakeStore{}
	uc := NewSearchUseCase(p, store, 25, newTestLogger(t))

	response, count, err := uc.Search(context.Background(), "golang tutorial")
	require.NoError(t, err)
	assert.Equal(t, 7, count)
	assert.Equal(t, "resp-1", response.ResponseID)
	assert.Same(t, p.result, store.gotResult)
}

func TestSearchBuildsQueryRecordWithDefaults(t *testing.T) {
	p := &fakeProvider{result: searchResult(1)}
	store := &fakeStore{}
	uc := NewSearchUseCase(p, store, 0, newTestLogger(t))

	before := time.Now().UTC()
	_, _, err := uc.Search(context.Background(), "golang")
	require.NoError(t, err)
	after := time.Now().UTC()

	require.NotNil(t, store.gotQuery)
	q := store.gotQuery
	assert.Equal(t, "golang", q.Subject)
	assert.Equal(t, "golang", q.Term)
	assert.Equal(t, "snippet", q.Part)
	assert.Equal(t, "video", q.Type)
	assert.Equal(t, int64(types.DefaultMaxResults), q.MaxResults)

	assert.False(t, q.SubmittedAt.Before(before))
	assert.False(t, q.ReceivedAt.After(after))
	assert.False(t, q.ReceivedAt.Before(q.SubmittedAt))
}

func TestSearchEmptySubject(t *testing.T) {
	p := &fakeProvider{result: searchResult(1)}
	store := &fakeStore{}
	uc := NewSearchUseCase(p, store, 25, newTestLogger(t))

	_, _, err := uc.Search(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrEmptySubject)
	assert.Nil(t, p.gotRequest, "provider should not be called")
}

func TestSearchProviderErrorPropagates(t *testing.T) {
	p := &fakeProvider{err: types.ErrProviderQuota}
	store := &fakeStore{}
	uc := NewSearchUseCase(p, store, 25, newTestLogger(t))

	_, _, err := uc.Search(context.Background(), "golang")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrProviderQuota)
	assert.Nil(t, store.gotQuery, "nothing should be stored on provider failure")
}

func TestSearchStoreErrorPropagates(t *testing.T) {
	storeErr := errors.New("connection refused")
	p := &fakeProvider{result: searchResult(2)}
	store := &fakeStore{err: storeErr}
	uc := NewSearchUseCase(p, store, 25, newTestLogger(t))

	_, _, err := uc.Search(context.Background(), "golang")
	assert.ErrorIs(t, err, storeErr)
}
