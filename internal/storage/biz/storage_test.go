package biz

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lk2023060901/youtube-searcher-backend/internal/pkg/logger"
	searchtypes "github.com/lk2023060901/youtube-searcher-backend/internal/search/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResponseRepo struct {
	byID     map[string]*Response
	writeLog *[]string
	err      error
}

func (f *fakeResponseRepo) Upsert(ctx context.Context, response *Response) error {
	if f.err != nil {
		return f.err
	}
	if f.byID == nil {
		f.byID = make(map[string]*Response)
	}
	f.byID[response.ResponseID] = response
	if f.writeLog != nil {
		*f.writeLog = append(*f.writeLog, "response")
	}
	return nil
}

func (f *fakeResponseRepo) GetByID(ctx context.Context, responseID string) (*Response, error) {
	r, ok := f.byID[responseID]
	if !ok {
		return nil, errors.New("not found")
	}
	return r, nil
}

func (f *fakeResponseRepo) List(ctx context.Context) ([]*Response, error) {
	out := make([]*Response, 0, len(f.byID))
	for _, r := range f.byID {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeResponseRepo) ListBySubject(ctx context.Context, subject string) ([]*Response, error) {
	var out []*Response
	for _, r := range f.byID {
		if r.Subject == subject {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResponseRepo) ListSubjects(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, r := range f.byID {
		if !seen[r.Subject] {
			seen[r.Subject] = true
			out = append(out, r.Subject)
		}
	}
	return out, nil
}

type fakeSnippetRepo struct {
	byKey    map[string]*Snippet // response_id + "/" + video_id
	writeLog *[]string
	err      error
}

func (f *fakeSnippetRepo) UpsertBatch(ctx context.Context, snippets []*Snippet) error {
	if f.err != nil {
		return f.err
	}
	if f.byKey == nil {
		f.byKey = make(map[string]*Snippet)
	}
	for _, s := range snippets {
		f.byKey[s.ResponseID+"/"+s.VideoID] = s
	}
	if f.writeLog != nil {
		*f.writeLog = append(*f.writeLog, "snippets")
	}
	return nil
}

func (f *fakeSnippetRepo) List(ctx context.Context) ([]*Snippet, error) {
	out := make([]*Snippet, 0, len(f.byKey))
	for _, s := range f.byKey {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSnippetRepo) ListByResponseID(ctx context.Context, responseID string) ([]*Snippet, error) {
	var out []*Snippet
	for _, s := range f.byKey {
		if s.ResponseID == responseID {
			out = append(out, s)
		}
	}
	return out, nil
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "console"})
	require.NoError(t, err)
	return log
}

func testResult(items int) *searchtypes.SearchResult {
	result := &searchtypes.SearchResult{
		Kind:           "youtube#searchListResponse",
		Etag:           "etag-abc",
		NextPageToken:  "CAUQAA",
		RegionCode:     "US",
		TotalResults:   1000,
		ResultsPerPage: int64(items),
	}
	for i := 0; i < items; i++ {
		result.Items = append(result.Items, &searchtypes.VideoItem{
			VideoID:      uuid.NewString()[:11],
			PublishedAt:  "2024-05-01T10:00:00Z",
			ChannelID:    "UC123",
			ChannelTitle: "Channel",
			Title:        "Video",
			Description:  "Description",
		})
	}
	return result
}

func testQuery(subject string) *QueryRecord {
	now := time.Now().UTC()
	return &QueryRecord{
		Subject:     subject,
		Part:        "snippet",
		Term:        subject,
		Type:        "video",
		MaxResults:  25,
		SubmittedAt: now.Add(-time.Second),
		ReceivedAt:  now,
	}
}

func TestSaveQueryResponseCreatesOneSnippetPerItem(t *testing.T) {
	responses := &fakeResponseRepo{}
	snippets := &fakeSnippetRepo{}
	uc := NewStorageUseCase(responses, snippets, newTestLogger(t))

	result := testResult(5)
	response, err := uc.SaveQueryResponse(context.Background(), testQuery("golang"), result)
	require.NoError(t, err)
	require.NotNil(t, response)

	_, err = uuid.Parse(response.ResponseID)
	assert.NoError(t, err, "response ID should be a generated UUID")

	stored, err := uc.ListSnippetsByResponse(context.Background(), response.ResponseID)
	require.NoError(t, err)
	assert.Len(t, stored, len(result.Items))
	for _, s := range stored {
		assert.Equal(t, response.ResponseID, s.ResponseID)
	}
}

func TestSaveQueryResponseHeaderFields(t *testing.T) {
	responses := &fakeResponseRepo{}
	snippets := &fakeSnippetRepo{}
	uc := NewStorageUseCase(responses, snippets, newTestLogger(t))

	query := testQuery("golang")
	response, err := uc.SaveQueryResponse(context.Background(), query, testResult(1))
	require.NoError(t, err)

	assert.Equal(t, "etag-abc", response.Etag)
	assert.Equal(t, "CAUQAA", response.NextPageToken)
	assert.Equal(t, "US", response.RegionCode)
	assert.Equal(t, int64(1000), response.TotalResults)
	assert.Equal(t, "golang", response.Subject)
	assert.Equal(t, "snippet", response.QueryPart)
	assert.Equal(t, "video", response.QueryType)
	assert.Equal(t, query.SubmittedAt, response.RequestSubmittedAt)
	assert.Equal(t, query.ReceivedAt, response.ResponseReceivedAt)
}

func TestSaveQueryResponseWritesHeaderFirst(t *testing.T) {
	var writeLog []string
	responses := &fakeResponseRepo{writeLog: &writeLog}
	snippets := &fakeSnippetRepo{writeLog: &writeLog}
	uc := NewStorageUseCase(responses, snippets, newTestLogger(t))

	_, err := uc.SaveQueryResponse(context.Background(), testQuery("golang"), testResult(3))
	require.NoError(t, err)

	require.Equal(t, []string{"response", "snippets"}, writeLog)
}

func TestSaveQueryResponseNoItems(t *testing.T) {
	responses := &fakeResponseRepo{}
	snippets := &fakeSnippetRepo{}
	uc := NewStorageUseCase(responses, snippets, newTestLogger(t))

	response, err := uc.SaveQueryResponse(context.Background(), testQuery("obscure"), testResult(0))
	require.NoError(t, err)

	stored, err := uc.ListSnippets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)
	assert.NotEmpty(t, response.ResponseID)
}

func TestSaveQueryResponseHeaderWriteFails(t *testing.T) {
	responses := &fakeResponseRepo{err: errors.New("connection refused")}
	snippets := &fakeSnippetRepo{}
	uc := NewStorageUseCase(responses, snippets, newTestLogger(t))

	_, err := uc.SaveQueryResponse(context.Background(), testQuery("golang"), testResult(3))
	require.Error(t, err)

	// nothing was written
	stored, listErr := uc.ListSnippets(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, stored)
}

func TestSaveQueryResponseSnippetWriteFailsLeavesOrphanedHeader(t *testing.T) {
	responses := &fakeResponseRepo{}
	snippets := &fakeSnippetRepo{err: errors.New("connection refused")}
	uc := NewStorageUseCase(responses, snippets, newTestLogger(t))

	_, err := uc.SaveQueryResponse(context.Background(), testQuery("golang"), testResult(3))
	require.Error(t, err)

	// the header write preceded the failure and stays behind
	headers, listErr := uc.ListResponses(context.Background())
	require.NoError(t, listErr)
	assert.Len(t, headers, 1)
}

func TestReadOperationsDelegateToRepos(t *testing.T) {
	responses := &fakeResponseRepo{}
	snippets := &fakeSnippetRepo{}
	uc := NewStorageUseCase(responses, snippets, newTestLogger(t))

	ctx := context.Background()
	r1, err := uc.SaveQueryResponse(ctx, testQuery("golang"), testResult(2))
	require.NoError(t, err)
	_, err = uc.SaveQueryResponse(ctx, testQuery("rustlang"), testResult(1))
	require.NoError(t, err)

	headers, err := uc.ListResponses(ctx)
	require.NoError(t, err)
	assert.Len(t, headers, 2)

	items, err := uc.ListSnippets(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 3)

	subjects, err := uc.ListSubjects(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"golang", "rustlang"}, subjects)

	bySubject, err := uc.ListResponsesBySubject(ctx, "golang")
	require.NoError(t, err)
	require.Len(t, bySubject, 1)
	assert.Equal(t, r1.ResponseID, bySubject[0].ResponseID)

	got, err := uc.GetResponse(ctx, r1.ResponseID)
	require.NoError(t, err)
	assert.Equal(t, "golang", got.Subject)
}
