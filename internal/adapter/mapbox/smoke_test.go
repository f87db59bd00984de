//go:build mapbox

package mapbox

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/couchcryptid/flood-risk-dashboard/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit the real Mapbox API and require a valid MAPBOX_TOKEN env var.
// Run with: go test -tags=mapbox ./internal/adapter/mapbox/ -v -count=1

func smokeClient(t *testing.T) *Client {
	t.Helper()
	token := os.Getenv("MAPBOX_TOKEN")
	if token == "" {
		t.Fatal("MAPBOX_TOKEN must be set to run smoke tests")
	}
	return &Client{
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestSmoke_ReverseGeocode_Gangnam(t *testing.T) {
	c := smokeClient(t)

	// Gangnam Station, Seoul.
	result, err := c.ReverseGeocode(context.Background(), 37.4979, 127.0276)
	require.NoError(t, err)

	assert.NotEmpty(t, result.FormattedAddress)
	assert.NotEmpty(t, result.PlaceName)
	assert.Greater(t, result.Confidence, 0.0)
}

func TestSmoke_ReverseGeocode_OpenSea(t *testing.T) {
	c := smokeClient(t)

	// Middle of the Yellow Sea; Mapbox may or may not return a feature.
	_, err := c.ReverseGeocode(context.Background(), 35.5, 124.0)
	require.NoError(t, err)
}

func TestSmoke_CachedGeocoder(t *testing.T) {
	c := smokeClient(t)
	cached := NewCachedGeocoder(c, 10, observability.NewMetricsForTesting())

	r1, err := cached.ReverseGeocode(context.Background(), 37.4985, 127.0268)
	require.NoError(t, err)
	require.NotEmpty(t, r1.FormattedAddress)

	r2, err := cached.ReverseGeocode(context.Background(), 37.4985, 127.0268)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}
