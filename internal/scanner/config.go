package scanner

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/robfig/cron/v3"
)

var (
	ErrNoQueries       = errors.New("empty list of queries")
	ErrTooManyQueries  = errors.New("number of listed queries exceeds the configured maximum")
	ErrInvalidCronSpec = errors.New("cron expression does not match the required pattern")
	ErrEmptySubject    = errors.New("query entry has an empty subject")
)

// QuerySpec is one configured query of a scan tick
type QuerySpec struct {
	Subject string `json:"subject"`
}

// Config is the static query-list configuration loaded at startup
type Config struct {
	Cron    string      `json:"cron"`
	Queries []QuerySpec `json:"queries"`
}

// LoadConfig reads the JSON query-list file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read query config: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse query config: %w", err)
	}

	return &config, nil
}

// Validate checks the query list and cron expression. maxQueries bounds the
// number of configured entries per scan.
func (c *Config) Validate(maxQueries int) error {
	if len(c.Queries) == 0 {
		return ErrNoQueries
	}
	if maxQueries > 0 && len(c.Queries) > maxQueries {
		return fmt.Errorf("%w: %d > %d", ErrTooManyQueries, len(c.Queries), maxQueries)
	}
	for i, q := range c.Queries {
		if q.Subject == "" {
			return fmt.Errorf("%w: entry %d", ErrEmptySubject, i)
		}
	}

	if _, err := cron.ParseStandard(c.Cron); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidCronSpec, c.Cron)
	}

	return nil
}
