package mapbox

import (
	"context"
	"fmt"

	"github.com/couchcryptid/flood-risk-dashboard/internal/domain"
	"github.com/couchcryptid/flood-risk-dashboard/internal/observability"
	lru "github.com/hashicorp/golang-lru/v2"
)

// keyPrecision rounds coordinates to about 11 m, so posts from the same
// building share one lookup.
const keyPrecision = 4

// CachedGeocoder wraps a Geocoder with an in-memory LRU cache. It is safe for
// concurrent use.
type CachedGeocoder struct {
	inner   domain.Geocoder
	cache   *lru.Cache[string, domain.GeocodingResult]
	metrics *observability.Metrics
}

// NewCachedGeocoder creates a cache decorator around a geocoder. A
// non-positive maxEntries falls back to a single entry.
func NewCachedGeocoder(inner domain.Geocoder, maxEntries int, metrics *observability.Metrics) *CachedGeocoder {
	cache, err := lru.New[string, domain.GeocodingResult](max(maxEntries, 1))
	if err != nil {
		// Only returned for a non-positive size, which max rules out.
		panic(err)
	}
	return &CachedGeocoder{
		inner:   inner,
		cache:   cache,
		metrics: metrics,
	}
}

// ReverseGeocode serves repeated coordinates from the cache.
func (c *CachedGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (domain.GeocodingResult, error) {
	key := cacheKey(lat, lon)
	if result, ok := c.cache.Get(key); ok {
		c.metrics.GeocodeCache.WithLabelValues("hit").Inc()
		return result, nil
	}
	c.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	result, err := c.inner.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		return result, err
	}
	// Empty results are not cached so a later upload can retry.
	if result.FormattedAddress != "" {
		c.cache.Add(key, result)
	}
	return result, nil
}

// Len returns the number of cached entries.
func (c *CachedGeocoder) Len() int {
	return c.cache.Len()
}

func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("%.*f,%.*f", keyPrecision, lat, keyPrecision, lon)
}
