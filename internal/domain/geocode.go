package domain

import (
	"context"
	"log/slog"
	"strings"
)

// EnrichPlaceName fills in a missing place name by reverse geocoding the
// post's coordinates. Posts that already have a name, or have no coordinates,
// are returned with only PlaceSource set. Geocoding failures never fail the
// post; the placeholder name is used instead.
func EnrichPlaceName(ctx context.Context, post Post, geocoder Geocoder, logger *slog.Logger) Post {
	if strings.TrimSpace(post.PlaceName) != "" {
		post.PlaceSource = PlaceOriginal
		return post
	}
	if geocoder == nil || !post.HasCoordinates() {
		post.PlaceSource = PlacePlaceholder
		return post
	}

	result, err := geocoder.ReverseGeocode(ctx, *post.Lat, *post.Lon)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"row", post.Row,
			"lat", *post.Lat,
			"lon", *post.Lon,
			"error", err,
		)
		post.PlaceSource = PlaceFailed
		return post
	}

	name := result.PlaceName
	if name == "" {
		name = result.FormattedAddress
	}
	if name == "" {
		post.PlaceSource = PlacePlaceholder
		return post
	}
	post.PlaceName = name
	post.PlaceSource = PlaceReverse
	return post
}

// EnrichPlaceNames applies EnrichPlaceName to every post and returns a new
// slice. It stops early, leaving the remaining posts untouched except for
// their PlaceSource, when ctx is cancelled.
func EnrichPlaceNames(ctx context.Context, posts []Post, geocoder Geocoder, logger *slog.Logger) []Post {
	out := make([]Post, len(posts))
	for i, p := range posts {
		if ctx.Err() != nil {
			out[i] = EnrichPlaceName(ctx, p, nil, logger)
			continue
		}
		out[i] = EnrichPlaceName(ctx, p, geocoder, logger)
	}
	return out
}
