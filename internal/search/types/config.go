package types

type ProviderID string

const (
	ProviderYouTube ProviderID = "youtube"
)

// ProviderConfig represents metadata provider configuration
type ProviderConfig struct {
	ID   ProviderID `json:"id" yaml:"id"`
	Name string     `json:"name" yaml:"name"`

	// API settings. APIKey may hold multiple comma-separated keys for
	// quota rotation. APIHost overrides the provider's default endpoint
	// (useful against emulators and in tests).
	APIHost string `json:"api_host,omitempty" yaml:"api_host,omitempty"`
	APIKey  string `json:"api_key" yaml:"api_key"`

	// Optional settings
	Timeout    int    `json:"timeout,omitempty" yaml:"timeout,omitempty"` // seconds
	RegionCode string `json:"region_code,omitempty" yaml:"region_code,omitempty"`
	MaxResults int64  `json:"max_results,omitempty" yaml:"max_results,omitempty"`
}

// Validate validates the provider configuration
func (c *ProviderConfig) Validate() error {
	if c.ID == "" {
		return ErrInvalidProviderID
	}
	if c.Name == "" {
		return ErrInvalidProviderName
	}
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}
