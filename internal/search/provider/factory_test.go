package provider

import (
	"testing"

	"github.com/lk2023060901/youtube-searcher-backend/internal/search/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFactory(t *testing.T) {
	f := NewFactory()
	require.NotNil(t, f)

	ids := f.ListProviders()
	assert.Contains(t, ids, types.ProviderYouTube)
}

func TestFactoryCreate(t *testing.T) {
	f := NewFactory()

	p, err := f.Create(&types.ProviderConfig{
		ID:     types.ProviderYouTube,
		Name:   "YouTube Data API",
		APIKey: "test-key",
	})
	require.NoError(t, err)
	assert.Equal(t, types.ProviderYouTube, p.GetID())
	assert.Equal(t, "YouTube Data API", p.GetName())
}

func TestFactoryCreateInvalidConfig(t *testing.T) {
	f := NewFactory()

	_, err := f.Create(&types.ProviderConfig{
		ID:   types.ProviderYouTube,
		Name: "YouTube Data API",
	})
	assert.ErrorIs(t, err, types.ErrMissingAPIKey)
}

func TestFactoryCreateUnknownProvider(t *testing.T) {
	f := NewFactory()

	_, err := f.Create(&types.ProviderConfig{
		ID:     "vimeo",
		Name:   "Vimeo",
		APIKey: "test-key",
	})
	assert.ErrorIs(t, err, types.ErrProviderNotFound)
}

func TestFactoryRegister(t *testing.T) {
	f := NewFactory()

	f.Register("custom", func(config *types.ProviderConfig) (Provider, error) {
		return nil, nil
	})

	assert.Contains(t, f.ListProviders(), types.ProviderID("custom"))
}
