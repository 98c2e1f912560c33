package provider

import (
	"context"

	"github.com/lk2023060901/youtube-searcher-backend/internal/search/types"
)

// Provider defines the interface for video-metadata providers
type Provider interface {
	// Search executes one search invocation against the external API
	Search(ctx context.Context, req *types.SearchRequest) (*types.SearchResult, error)

	// GetID returns the provider ID
	GetID() types.ProviderID

	// GetName returns the provider name
	GetName() string

	// Validate validates the provider configuration
	Validate() error
}
