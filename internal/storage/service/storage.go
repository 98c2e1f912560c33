package service

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apperrors "github.com/lk2023060901/youtube-searcher-backend/internal/pkg/errors"
	pkgredis "github.com/lk2023060901/youtube-searcher-backend/internal/pkg/redis"
	"github.com/lk2023060901/youtube-searcher-backend/internal/pkg/response"
	"github.com/lk2023060901/youtube-searcher-backend/internal/storage/biz"
	"go.uber.org/zap"
)

const (
	cacheKeyHeaders = "cache:headers"
	cacheKeyItems   = "cache:items"
)

// StorageReader exposes the read operations the API maps onto
type StorageReader interface {
	ListResponses(ctx context.Context) ([]*biz.Response, error)
	ListSnippets(ctx context.Context) ([]*biz.Snippet, error)
	ListSubjects(ctx context.Context) ([]string, error)
	ListResponsesBySubject(ctx context.Context, subject string) ([]*biz.Response, error)
	ListSnippetsByResponse(ctx context.Context, responseID string) ([]*biz.Snippet, error)
}

// StorageService serves the stored records over HTTP. The two unfiltered
// listing endpoints are cached in Redis for a short TTL; the data is
// append-mostly so stale reads within the TTL are acceptable.
type StorageService struct {
	reader   StorageReader
	cache    *pkgredis.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

func NewStorageService(reader StorageReader, cache *pkgredis.Client, cacheTTL time.Duration, logger *zap.Logger) *StorageService {
	return &StorageService{
		reader:   reader,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// HeaderResponse is the wire form of one stored response header
type HeaderResponse struct {
	ResponseID     string `json:"response_id"`
	Kind           string `json:"kind,omitempty"`
	Etag           string `json:"etag,omitempty"`
	NextPageToken  string `json:"next_page_token,omitempty"`
	RegionCode     string `json:"region_code,omitempty"`
	TotalResults   int64  `json:"total_results"`
	ResultsPerPage int64  `json:"results_per_page"`

	Subject    string `json:"subject"`
	QueryPart  string `json:"query_part,omitempty"`
	QueryTerm  string `json:"query_term,omitempty"`
	QueryType  string `json:"query_type,omitempty"`
	MaxResults int64  `json:"max_results,omitempty"`

	RequestSubmittedAt string `json:"request_submitted_at"`
	ResponseReceivedAt string `json:"response_received_at"`
}

// ItemResponse is the wire form of one stored snippet
type ItemResponse struct {
	ResponseID   string                   `json:"response_id"`
	VideoID      string                   `json:"video_id"`
	PublishedAt  string                   `json:"published_at,omitempty"`
	ChannelID    string                   `json:"channel_id,omitempty"`
	ChannelTitle string                   `json:"channel_title,omitempty"`
	Title        string                   `json:"title"`
	Description  string                   `json:"description,omitempty"`
	Tags         []string                 `json:"tags,omitempty"`
	Thumbnails   map[string]biz.Thumbnail `json:"thumbnails,omitempty"`
}

// ListHeaders returns all stored response headers
func (s *StorageService) ListHeaders(c *gin.Context) {
	ctx := c.Request.Context()

	var cached []*HeaderResponse
	if s.cacheHit(ctx, cacheKeyHeaders, &cached) {
		response.Success(c, cached)
		return
	}

	responses, err := s.reader.ListResponses(ctx)
	if err != nil {
		s.logger.Error("failed to list response headers", zap.Error(err))
		response.HandleError(c, apperrors.Wrap(err, apperrors.ErrStorageReadFailed))
		return
	}

	headers := make([]*HeaderResponse, len(responses))
	for i, r := range responses {
		headers[i] = toHeaderResponse(r)
	}

	s.cachePut(ctx, cacheKeyHeaders, headers)
	response.Success(c, headers)
}

// ListItems returns all stored snippets
func (s *StorageService) ListItems(c *gin.Context) {
	ctx := c.Request.Context()

	var cached []*ItemResponse
	if s.cacheHit(ctx, cacheKeyItems, &cached) {
		response.Success(c, cached)
		return
	}

	snippets, err := s.reader.ListSnippets(ctx)
	if err != nil {
		s.logger.Error("failed to list snippets", zap.Error(err))
		response.HandleError(c, apperrors.Wrap(err, apperrors.ErrStorageReadFailed))
		return
	}

	items := make([]*ItemResponse, len(snippets))
	for i, snippet := range snippets {
		items[i] = toItemResponse(snippet)
	}

	s.cachePut(ctx, cacheKeyItems, items)
	response.Success(c, items)
}

// ListSubjects returns the distinct subjects across all stored responses
func (s *StorageService) ListSubjects(c *gin.Context) {
	subjects, err := s.reader.ListSubjects(c.Request.Context())
	if err != nil {
		s.logger.Error("failed to list subjects", zap.Error(err))
		response.HandleError(c, apperrors.Wrap(err, apperrors.ErrStorageReadFailed))
		return
	}

	response.Success(c, subjects)
}

// ListResponsesBySubject returns the headers recorded for one subject
func (s *StorageService) ListResponsesBySubject(c *gin.Context) {
	subject := c.Param("subject")
	if subject == "" {
		response.BadRequest(c, "subject is required")
		return
	}

	responses, err := s.reader.ListResponsesBySubject(c.Request.Context(), subject)
	if err != nil {
		s.logger.Error("failed to list responses by subject",
			zap.String("subject", subject),
			zap.Error(err),
		)
		response.HandleError(c, apperrors.Wrap(err, apperrors.ErrStorageReadFailed))
		return
	}

	headers := make([]*HeaderResponse, len(responses))
	for i, r := range responses {
		headers[i] = toHeaderResponse(r)
	}
	response.Success(c, headers)
}

// ListSnippetsByResponse returns the snippets of one response
func (s *StorageService) ListSnippetsByResponse(c *gin.Context) {
	responseID := c.Param("response_id")
	if _, err := uuid.Parse(responseID); err != nil {
		response.BadRequest(c, "response_id must be a valid UUID")
		return
	}

	snippets, err := s.reader.ListSnippetsByResponse(c.Request.Context(), responseID)
	if err != nil {
		s.logger.Error("failed to list snippets by response",
			zap.String("response_id", responseID),
			zap.Error(err),
		)
		response.HandleError(c, apperrors.Wrap(err, apperrors.ErrStorageReadFailed))
		return
	}

	items := make([]*ItemResponse, len(snippets))
	for i, snippet := range snippets {
		items[i] = toItemResponse(snippet)
	}
	response.Success(c, items)
}

// RegisterRoutes registers the read endpoints
func (s *StorageService) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/headers", s.ListHeaders)
	r.GET("/items", s.ListItems)
	r.GET("/subjects", s.ListSubjects)
	r.GET("/responses/:subject", s.ListResponsesBySubject)
	r.GET("/snippets/:response_id", s.ListSnippetsByResponse)
}

// cacheHit reads a cached listing. Cache errors degrade to a database read.
func (s *StorageService) cacheHit(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.GetJSON(ctx, key, dest)
	if err != nil {
		s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (s *StorageService) cachePut(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, value, s.cacheTTL); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func toHeaderResponse(r *biz.Response) *HeaderResponse {
	return &HeaderResponse{
		ResponseID:     r.ResponseID,
		Kind:           r.Kind,
		Etag:           r.Etag,
		NextPageToken:  r.NextPageToken,
		RegionCode:     r.RegionCode,
		TotalResults:   r.TotalResults,
		ResultsPerPage: r.ResultsPerPage,

		Subject:    r.Subject,
		QueryPart:  r.QueryPart,
		QueryTerm:  r.QueryTerm,
		QueryType:  r.QueryType,
		MaxResults: r.MaxResults,

		RequestSubmittedAt: r.RequestSubmittedAt.UTC().Format(time.RFC3339),
		ResponseReceivedAt: r.ResponseReceivedAt.UTC().Format(time.RFC3339),
	}
}

func toItemResponse(snippet *biz.Snippet) *ItemResponse {
	return &ItemResponse{
		ResponseID:   snippet.ResponseID,
		VideoID:      snippet.VideoID,
		PublishedAt:  snippet.PublishedAt,
		ChannelID:    snippet.ChannelID,
		ChannelTitle: snippet.ChannelTitle,
		Title:        snippet.Title,
		Description:  snippet.Description,
		Tags:         snippet.Tags,
		Thumbnails:   snippet.Thumbnails,
	}
}
