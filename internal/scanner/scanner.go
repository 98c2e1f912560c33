package scanner

import (
	"context"

	"github.com/lk2023060901/youtube-searcher-backend/internal/pkg/logger"
	storagebiz "github.com/lk2023060901/youtube-searcher-backend/internal/storage/biz"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SearchEngine runs one query and reports how many items it ingested
type SearchEngine interface {
	Search(ctx context.Context, subject string) (*storagebiz.Response, int, error)
}

// Scanner replays the configured query list on a cron schedule, bounded by
// a per-run item cap. Ticks run sequentially on the cron scheduler's
// goroutine; overlapping ticks are not expected with realistic schedules
// and are not guarded against.
type Scanner struct {
	config   *Config
	engine   SearchEngine
	maxItems int
	logger   *logger.Logger
	cron     *cron.Cron
}

// New validates the query config and builds a scanner. maxItems caps the
// cumulative item count per scan tick; maxQueries bounds the configured
// query list.
func New(config *Config, engine SearchEngine, maxItems, maxQueries int, log *logger.Logger) (*Scanner, error) {
	if err := config.Validate(maxQueries); err != nil {
		return nil, err
	}

	return &Scanner{
		config:   config,
		engine:   engine,
		maxItems: maxItems,
		logger:   log,
	}, nil
}

// Start registers the scan tick with the cron scheduler and starts it
func (s *Scanner) Start() error {
	s.cron = cron.New()

	if _, err := s.cron.AddFunc(s.config.Cron, s.tick); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scanner started",
		zap.String("cron", s.config.Cron),
		zap.Int("queries", len(s.config.Queries)),
		zap.Int("max_items_per_scan", s.maxItems),
	)
	return nil
}

// Stop stops the scheduler and waits for a running tick to finish
func (s *Scanner) Stop() {
	if s.cron == nil {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scanner stopped")
}

func (s *Scanner) tick() {
	total := s.RunQueries(context.Background(), s.config.Queries)
	s.logger.Info("scan tick finished", zap.Int("items_ingested", total))
}

// RunQueries executes the query list in order and returns the cumulative
// item count. Once the count reaches the per-run cap no further queries are
// issued (partial run). A failed query is logged and skipped; the remaining
// entries still run.
func (s *Scanner) RunQueries(ctx context.Context, queries []QuerySpec) int {
	total := 0

	for _, query := range queries {
		if s.maxItems > 0 && total >= s.maxItems {
			s.logger.Warn("per-scan item cap reached, skipping remaining queries",
				zap.Int("items_ingested", total),
				zap.Int("max_items_per_scan", s.maxItems),
			)
			break
		}

		s.logger.Info("starting query", zap.String("subject", query.Subject))

		response, count, err := s.engine.Search(ctx, query.Subject)
		if err != nil {
			s.logger.Error("query failed, continuing with next entry",
				zap.String("subject", query.Subject),
				zap.Error(err),
			)
			continue
		}

		total += count
		s.logger.Info("finished query",
			zap.String("subject", query.Subject),
			zap.String("response_id", response.ResponseID),
			zap.Int("items", count),
		)
	}

	return total
}
