// Package report builds the map and summary views of a classified upload.
package report

import (
	"fmt"
	"strconv"

	"github.com/couchcryptid/flood-risk-dashboard/internal/domain"
)

// MapOptions configures a map view.
type MapOptions struct {
	Zoom               int
	FallbackLat        float64
	FallbackLon        float64
	PopupPreviewLength int
}

// Marker is one styled point on the map.
type Marker struct {
	Row     int              `json:"row"`
	Lat     float64          `json:"lat"`
	Lon     float64          `json:"lon"`
	Risk    domain.RiskLevel `json:"risk_level"`
	Color   string           `json:"color"`
	Radius  float64          `json:"radius"`
	Popup   Popup            `json:"popup"`
	Tooltip string           `json:"tooltip"`
}

// Popup is the text shown when a marker is clicked.
type Popup struct {
	Place     string           `json:"place"`
	Risk      domain.RiskLevel `json:"risk_level"`
	Sentiment string           `json:"sentiment"`
	Preview   string           `json:"preview"`
}

// MapView is a fresh, self-contained map description for one upload.
type MapView struct {
	CenterLat float64  `json:"center_lat"`
	CenterLon float64  `json:"center_lon"`
	Zoom      int      `json:"zoom"`
	Fallback  bool     `json:"fallback_center"`
	Markers   []Marker `json:"markers"`
}

// BuildMap places one marker per post with both coordinates and centers the
// view on their centroid. When no post can be placed it returns a view
// centered on the fallback coordinate together with *domain.EmptyResultError.
func BuildMap(posts []domain.Post, opts MapOptions) (MapView, error) {
	view := MapView{
		Zoom:    opts.Zoom,
		Markers: make([]Marker, 0, len(posts)),
	}

	var sumLat, sumLon float64
	for _, p := range posts {
		if !p.HasCoordinates() {
			continue
		}
		view.Markers = append(view.Markers, newMarker(p, opts.PopupPreviewLength))
		sumLat += *p.Lat
		sumLon += *p.Lon
	}

	if len(view.Markers) == 0 {
		view.CenterLat = opts.FallbackLat
		view.CenterLon = opts.FallbackLon
		view.Fallback = true
		return view, &domain.EmptyResultError{Rows: len(posts)}
	}

	n := float64(len(view.Markers))
	view.CenterLat = sumLat / n
	view.CenterLon = sumLon / n
	return view, nil
}

func newMarker(p domain.Post, previewLen int) Marker {
	style := domain.StyleFor(p.Risk)
	return Marker{
		Row:    p.Row,
		Lat:    *p.Lat,
		Lon:    *p.Lon,
		Risk:   p.Risk,
		Color:  style.Color,
		Radius: style.Radius,
		Popup: Popup{
			Place:     domain.DisplayPlace(p),
			Risk:      p.Risk,
			Sentiment: sentimentText(p),
			Preview:   domain.Truncate(p.Text, previewLen),
		},
		Tooltip: fmt.Sprintf("%s, %s", formatCoord(*p.Lat), formatCoord(*p.Lon)),
	}
}

// sentimentText renders whichever sentiment fields the post carries.
func sentimentText(p domain.Post) string {
	switch {
	case p.SentimentScore != nil && p.SentimentLabel != "":
		return fmt.Sprintf("%s (%s)", formatScore(*p.SentimentScore), p.SentimentLabel)
	case p.SentimentScore != nil:
		return formatScore(*p.SentimentScore)
	case p.SentimentLabel != "":
		return p.SentimentLabel
	default:
		return "-"
	}
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
