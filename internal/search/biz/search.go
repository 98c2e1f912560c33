package biz

import (
	"context"
	"fmt"
	"time"

	"github.com/lk2023060901/youtube-searcher-backend/internal/pkg/logger"
	"github.com/lk2023060901/youtube-searcher-backend/internal/search/provider"
	"github.com/lk2023060901/youtube-searcher-backend/internal/search/types"
	storagebiz "github.com/lk2023060901/youtube-searcher-backend/internal/storage/biz"
	"go.uber.org/zap"
)

// ResultStore persists one normalized search result
type ResultStore interface {
	SaveQueryResponse(ctx context.Context, query *storagebiz.QueryRecord, result *types.SearchResult) (*storagebiz.Response, error)
}

// SearchUseCase submits one query to the metadata provider and stores the
// decomposed response
type SearchUseCase struct {
	provider   provider.Provider
	store      ResultStore
	maxResults int64
	logger     *logger.Logger
}

func NewSearchUseCase(p provider.Provider, store ResultStore, maxResults int64, log *logger.Logger) *SearchUseCase {
	if maxResults <= 0 {
		maxResults = types.DefaultMaxResults
	}
	return &SearchUseCase{
		provider:   p,
		store:      store,
		maxResults: maxResults,
		logger:     log,
	}
}

// Search calls the external API once for the given subject and persists the
// header plus item records. Provider and storage errors propagate to the
// caller unchanged; there is no retry here.
func (uc *SearchUseCase) Search(ctx context.Context, subject string) (*storagebiz.Response, int, error) {
	req := &types.SearchRequest{
		Subject:    subject,
		MaxResults: uc.maxResults,
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, 0, err
	}

	submittedAt := time.Now().UTC()
	uc.logger.Info("search request submitted",
		zap.String("subject", subject),
		zap.String("part", req.Part),
		zap.String("type", req.ResultType),
		zap.Int64("max_results", req.MaxResults),
	)

	result, err := uc.provider.Search(ctx, req)
	if err != nil {
		return nil, 0, fmt.Errorf("search %q failed: %w", subject, err)
	}
	receivedAt := time.Now().UTC()

	query := &storagebiz.QueryRecord{
		Subject:     subject,
		Part:        req.Part,
		Term:        req.Subject,
		Type:        req.ResultType,
		MaxResults:  req.MaxResults,
		SubmittedAt: submittedAt,
		ReceivedAt:  receivedAt,
	}

	response, err := uc.store.SaveQueryResponse(ctx, query, result)
	if err != nil {
		return nil, 0, err
	}

	return response, len(result.Items), nil
}
