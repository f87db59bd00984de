package domain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// --- mock geocoder ---

type mockGeocoder struct {
	result GeocodingResult
	err    error
	calls  int
}

func (m *mockGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (GeocodingResult, error) {
	m.calls++
	return m.result, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func floatPtr(v float64) *float64 { return &v }

func gangnamPost() Post {
	return Post{Row: 1, Text: "강남역 물이 너무 많이 찼어요", Lat: floatPtr(37.4979), Lon: floatPtr(127.0276)}
}

// --- tests ---

func TestEnrichPlaceName_NilGeocoder(t *testing.T) {
	result := EnrichPlaceName(context.Background(), gangnamPost(), nil, discardLogger())

	assert.Empty(t, result.PlaceName)
	assert.Equal(t, PlacePlaceholder, result.PlaceSource)
}

func TestEnrichPlaceName_KeepsOriginalName(t *testing.T) {
	geo := &mockGeocoder{result: GeocodingResult{PlaceName: "Seocho-gu"}}
	post := gangnamPost()
	post.PlaceName = "강남역"

	result := EnrichPlaceName(context.Background(), post, geo, discardLogger())

	assert.Equal(t, "강남역", result.PlaceName)
	assert.Equal(t, PlaceOriginal, result.PlaceSource)
	assert.Equal(t, 0, geo.calls)
}

func TestEnrichPlaceName_ReverseGeocode(t *testing.T) {
	geo := &mockGeocoder{result: GeocodingResult{
		FormattedAddress: "Gangnam-daero, Seocho-gu, Seoul, South Korea",
		PlaceName:        "Gangnam Station",
		Confidence:       0.9,
	}}

	result := EnrichPlaceName(context.Background(), gangnamPost(), geo, discardLogger())

	assert.Equal(t, "Gangnam Station", result.PlaceName)
	assert.Equal(t, PlaceReverse, result.PlaceSource)
	assert.Equal(t, 1, geo.calls)
}

func TestEnrichPlaceName_FallsBackToFormattedAddress(t *testing.T) {
	geo := &mockGeocoder{result: GeocodingResult{FormattedAddress: "Seoul, South Korea"}}

	result := EnrichPlaceName(context.Background(), gangnamPost(), geo, discardLogger())

	assert.Equal(t, "Seoul, South Korea", result.PlaceName)
	assert.Equal(t, PlaceReverse, result.PlaceSource)
}

func TestEnrichPlaceName_Error_GracefulDegradation(t *testing.T) {
	geo := &mockGeocoder{err: errors.New("rate limited")}

	result := EnrichPlaceName(context.Background(), gangnamPost(), geo, discardLogger())

	assert.Equal(t, PlaceFailed, result.PlaceSource)
	assert.Empty(t, result.PlaceName)
	assert.Equal(t, PlacePlaceholderName, DisplayPlace(result))
	assert.Equal(t, 37.4979, *result.Lat) // coordinates preserved
}

func TestEnrichPlaceName_NoCoordinates(t *testing.T) {
	geo := &mockGeocoder{}
	post := Post{Row: 2, Text: "no location", Lat: floatPtr(37.5)}

	result := EnrichPlaceName(context.Background(), post, geo, discardLogger())

	assert.Equal(t, PlacePlaceholder, result.PlaceSource)
	assert.Equal(t, 0, geo.calls)
}

func TestEnrichPlaceName_EmptyResult(t *testing.T) {
	geo := &mockGeocoder{}

	result := EnrichPlaceName(context.Background(), gangnamPost(), geo, discardLogger())

	assert.Equal(t, PlacePlaceholder, result.PlaceSource)
	assert.Equal(t, 1, geo.calls)
}

func TestEnrichPlaceNames_StopsCallingAfterCancel(t *testing.T) {
	geo := &mockGeocoder{result: GeocodingResult{PlaceName: "Gangnam"}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	posts := []Post{gangnamPost(), gangnamPost()}
	result := EnrichPlaceNames(ctx, posts, geo, discardLogger())

	assert.Len(t, result, 2)
	assert.Equal(t, 0, geo.calls)
	for _, p := range result {
		assert.Equal(t, PlacePlaceholder, p.PlaceSource)
	}
	assert.Empty(t, posts[0].PlaceSource, "input must not be modified")
}
