package biz

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lk2023060901/youtube-searcher-backend/internal/pkg/logger"
	searchtypes "github.com/lk2023060901/youtube-searcher-backend/internal/search/types"
	"go.uber.org/zap"
)

// Response is the stored header record of one search invocation.
// Created once per successful external call and never mutated.
type Response struct {
	ResponseID     string
	Kind           string
	Etag           string
	NextPageToken  string
	RegionCode     string
	TotalResults   int64
	ResultsPerPage int64

	// Parameters of the originating request
	Subject    string
	QueryPart  string
	QueryTerm  string
	QueryType  string
	MaxResults int64

	RequestSubmittedAt time.Time
	ResponseReceivedAt time.Time
}

// Snippet is one stored result item belonging to a Response
type Snippet struct {
	ResponseID   string
	VideoID      string
	PublishedAt  string
	ChannelID    string
	ChannelTitle string
	Title        string
	Description  string
	Tags         []string
	Thumbnails   map[string]Thumbnail
}

// Thumbnail holds one stored thumbnail variant
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int64  `json:"width,omitempty"`
	Height int64  `json:"height,omitempty"`
}

// QueryRecord carries the request-side metadata persisted with each Response
type QueryRecord struct {
	Subject     string
	Part        string
	Term        string
	Type        string
	MaxResults  int64
	SubmittedAt time.Time
	ReceivedAt  time.Time
}

// ResponseRepo defines the interface for response header persistence
type ResponseRepo interface {
	Upsert(ctx context.Context, response *Response) error
	GetByID(ctx context.Context, responseID string) (*Response, error)
	List(ctx context.Context) ([]*Response, error)
	ListBySubject(ctx context.Context, subject string) ([]*Response, error)
	ListSubjects(ctx context.Context) ([]string, error)
}

// SnippetRepo defines the interface for snippet persistence
type SnippetRepo interface {
	UpsertBatch(ctx context.Context, snippets []*Snippet) error
	List(ctx context.Context) ([]*Snippet, error)
	ListByResponseID(ctx context.Context, responseID string) ([]*Snippet, error)
}

// StorageUseCase contains the normalization and persistence logic for
// search responses
type StorageUseCase struct {
	responses ResponseRepo
	snippets  SnippetRepo
	logger    *logger.Logger
}

func NewStorageUseCase(responses ResponseRepo, snippets SnippetRepo, log *logger.Logger) *StorageUseCase {
	return &StorageUseCase{
		responses: responses,
		snippets:  snippets,
		logger:    log,
	}
}

// SaveQueryResponse decomposes one external API result into a Response
// header and its Snippet rows and persists both. The Response write always
// precedes the Snippet writes; there is no transaction spanning the two
// tables, so a snippet failure leaves an orphaned header and surfaces the
// error to the caller.
func (uc *StorageUseCase) SaveQueryResponse(ctx context.Context, query *QueryRecord, result *searchtypes.SearchResult) (*Response, error) {
	response := &Response{
		ResponseID:     uuid.NewString(),
		Kind:           result.Kind,
		Etag:           result.Etag,
		NextPageToken:  result.NextPageToken,
		RegionCode:     result.RegionCode,
		TotalResults:   result.TotalResults,
		ResultsPerPage: result.ResultsPerPage,

		Subject:    query.Subject,
		QueryPart:  query.Part,
		QueryTerm:  query.Term,
		QueryType:  query.Type,
		MaxResults: query.MaxResults,

		RequestSubmittedAt: query.SubmittedAt,
		ResponseReceivedAt: query.ReceivedAt,
	}

	if err := uc.responses.Upsert(ctx, response); err != nil {
		return nil, fmt.Errorf("failed to store response header: %w", err)
	}

	snippets := make([]*Snippet, len(result.Items))
	for i, item := range result.Items {
		snippets[i] = &Snippet{
			ResponseID:   response.ResponseID,
			VideoID:      item.VideoID,
			PublishedAt:  item.PublishedAt,
			ChannelID:    item.ChannelID,
			ChannelTitle: item.ChannelTitle,
			Title:        item.Title,
			Description:  item.Description,
			Tags:         item.Tags,
			Thumbnails:   toThumbnails(item.Thumbnails),
		}
	}

	if len(snippets) > 0 {
		if err := uc.snippets.UpsertBatch(ctx, snippets); err != nil {
			// orphaned header, accepted per the storage contract
			return nil, fmt.Errorf("failed to store snippets for response %s: %w", response.ResponseID, err)
		}
	}

	uc.logger.Info("query response stored",
		zap.String("response_id", response.ResponseID),
		zap.String("subject", response.Subject),
		zap.Int("snippet_count", len(snippets)),
	)

	return response, nil
}

// GetResponse returns one response header by ID
func (uc *StorageUseCase) GetResponse(ctx context.Context, responseID string) (*Response, error) {
	return uc.responses.GetByID(ctx, responseID)
}

// ListResponses returns all stored response headers
func (uc *StorageUseCase) ListResponses(ctx context.Context) ([]*Response, error) {
	return uc.responses.List(ctx)
}

// ListResponsesBySubject returns the responses recorded for a subject
func (uc *StorageUseCase) ListResponsesBySubject(ctx context.Context, subject string) ([]*Response, error) {
	return uc.responses.ListBySubject(ctx, subject)
}

// ListSubjects returns the distinct subjects across all responses
func (uc *StorageUseCase) ListSubjects(ctx context.Context) ([]string, error) {
	return uc.responses.ListSubjects(ctx)
}

// ListSnippets returns all stored snippets
func (uc *StorageUseCase) ListSnippets(ctx context.Context) ([]*Snippet, error) {
	return uc.snippets.List(ctx)
}

// ListSnippetsByResponse returns the snippets of one response
func (uc *StorageUseCase) ListSnippetsByResponse(ctx context.Context, responseID string) ([]*Snippet, error) {
	return uc.snippets.ListByResponseID(ctx, responseID)
}

func toThumbnails(in map[string]searchtypes.Thumbnail) map[string]Thumbnail {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]Thumbnail, len(in))
	for k, v := range in {
		out[k] = Thumbnail{URL: v.URL, Width: v.Width, Height: v.Height}
	}
	return out
}
