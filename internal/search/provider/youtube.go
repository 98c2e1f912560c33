package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lk2023060901/youtube-searcher-backend/internal/search/types"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const defaultTimeout = 30 * time.Second

// YouTubeProvider implements search against the YouTube Data API v3.
// It holds one service per configured API key; when a call fails with a
// quota error the next key is tried in order.
type YouTubeProvider struct {
	config   *types.ProviderConfig
	services []*youtube.Service
	timeout  time.Duration
}

// NewYouTubeProvider creates a new YouTube Data API provider
func NewYouTubeProvider(config *types.ProviderConfig) (Provider, error) {
	keys := splitKeys(config.APIKey)
	if len(keys) == 0 {
		return nil, types.ErrMissingAPIKey
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = defaultTimeout
	}

	services := make([]*youtube.Service, 0, len(keys))
	for _, key := range keys {
		opts := []option.ClientOption{option.WithAPIKey(key)}
		if config.APIHost != "" {
			opts = append(opts, option.WithEndpoint(config.APIHost))
		}

		svc, err := youtube.NewService(context.Background(), opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create youtube service: %w", err)
		}
		services = append(services, svc)
	}

	return &YouTubeProvider{
		config:   config,
		services: services,
		timeout:  timeout,
	}, nil
}

// GetID returns the provider ID
func (p *YouTubeProvider) GetID() types.ProviderID {
	return p.config.ID
}

// GetName returns the provider name
func (p *YouTubeProvider) GetName() string {
	return p.config.Name
}

// Validate validates the provider configuration
func (p *YouTubeProvider) Validate() error {
	return p.config.Validate()
}

// Search executes one search.list call. A quota error on the current key
// falls through to the next configured key; any other error surfaces
// immediately.
func (p *YouTubeProvider) Search(ctx context.Context, req *types.SearchRequest) (*types.SearchResult, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var lastErr error
	for _, svc := range p.services {
		result, err := p.doSearch(ctx, svc, req)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !errors.Is(err, types.ErrProviderQuota) {
			break
		}
	}
	return nil, lastErr
}

func (p *YouTubeProvider) doSearch(ctx context.Context, svc *youtube.Service, req *types.SearchRequest) (*types.SearchResult, error) {
	call := svc.Search.List([]string{req.Part}).
		Q(req.Subject).
		Type(req.ResultType).
		MaxResults(req.MaxResults).
		Context(ctx)

	if req.PageToken != "" {
		call = call.PageToken(req.PageToken)
	}
	if req.Order != "" {
		call = call.Order(req.Order)
	}

	region := req.RegionCode
	if region == "" {
		region = p.config.RegionCode
	}
	if region != "" {
		call = call.RegionCode(region)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, p.wrapError(err)
	}

	return toSearchResult(resp), nil
}

func (p *YouTubeProvider) wrapError(err error) error {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		cause := err
		if gErr.Code == http.StatusForbidden || gErr.Code == http.StatusTooManyRequests {
			cause = fmt.Errorf("%w: %v", types.ErrProviderQuota, err)
		}
		return &types.ProviderError{
			Provider: p.GetID(),
			Code:     fmt.Sprintf("HTTP_%d", gErr.Code),
			Message:  gErr.Message,
			Err:      cause,
		}
	}

	return &types.ProviderError{
		Provider: p.GetID(),
		Code:     "REQUEST_FAILED",
		Message:  "failed to execute search",
		Err:      err,
	}
}

// toSearchResult splits the raw API payload into the header metadata and
// the ordered item list
func toSearchResult(resp *youtube.SearchListResponse) *types.SearchResult {
	result := &types.SearchResult{
		Kind:          resp.Kind,
		Etag:          resp.Etag,
		NextPageToken: resp.NextPageToken,
		RegionCode:    resp.RegionCode,
	}

	if resp.PageInfo != nil {
		result.TotalResults = resp.PageInfo.TotalResults
		result.ResultsPerPage = resp.PageInfo.ResultsPerPage
	}

	result.Items = make([]*types.VideoItem, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}

		result.Items = append(result.Items, &types.VideoItem{
			VideoID:      item.Id.VideoId,
			PublishedAt:  item.Snippet.PublishedAt,
			ChannelID:    item.Snippet.ChannelId,
			ChannelTitle: item.Snippet.ChannelTitle,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			Thumbnails:   toThumbnails(item.Snippet.Thumbnails),
		})
	}

	return result
}

func toThumbnails(details *youtube.ThumbnailDetails) map[string]types.Thumbnail {
	if details == nil {
		return nil
	}

	thumbs := make(map[string]types.Thumbnail)
	add := func(name string, t *youtube.Thumbnail) {
		if t != nil {
			thumbs[name] = types.Thumbnail{URL: t.Url, Width: t.Width, Height: t.Height}
		}
	}
	add("default", details.Default)
	add("medium", details.Medium)
	add("high", details.High)
	add("standard", details.Standard)
	add("maxres", details.Maxres)

	if len(thumbs) == 0 {
		return nil
	}
	return thumbs
}

func splitKeys(raw string) []string {
	parts := strings.Split(raw, ",")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		if k := strings.TrimSpace(p); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
