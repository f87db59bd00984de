package domain

import "time"

// RiskLevel is a coarse flood severity bucket. Valid values are 1..3.
type RiskLevel int

const (
	RiskLow    RiskLevel = 1
	RiskMedium RiskLevel = 2
	RiskHigh   RiskLevel = 3
)

// RiskLevels lists every level in ascending order.
var RiskLevels = []RiskLevel{RiskLow, RiskMedium, RiskHigh}

// Valid reports whether r is one of the three defined levels.
func (r RiskLevel) Valid() bool {
	return r >= RiskLow && r <= RiskHigh
}

// RiskSource records which input field produced a post's risk level.
type RiskSource string

const (
	RiskFromSentiment RiskSource = "sentiment"
	RiskFromTotal     RiskSource = "total_risk_score"
	RiskFromLabelText RiskSource = "label"
	RiskFromDefault   RiskSource = "default"
)

// PlaceSource records where a post's display name came from.
type PlaceSource string

const (
	PlaceOriginal    PlaceSource = "original"
	PlaceReverse     PlaceSource = "reverse"
	PlaceFailed      PlaceSource = "failed"
	PlacePlaceholder PlaceSource = "placeholder"
)

// Post is one row of an uploaded spreadsheet.
type Post struct {
	Row       int        `json:"row"` // 1-based data row, header excluded
	Timestamp *time.Time `json:"timestamp,omitempty"`
	AuthorID  string     `json:"author_id,omitempty"`
	Text      string     `json:"text"`
	Lat       *float64   `json:"latitude,omitempty"`
	Lon       *float64   `json:"longitude,omitempty"`
	PlaceName string     `json:"place_name,omitempty"`

	SentimentScore *float64 `json:"sentiment_score,omitempty"`
	SentimentLabel string   `json:"sentiment_label,omitempty"`
	TotalRiskScore *float64 `json:"total_risk_score,omitempty"`

	Risk        RiskLevel   `json:"risk_level"`
	RiskSource  RiskSource  `json:"risk_source,omitempty"`
	PlaceSource PlaceSource `json:"place_source,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are present.
func (p Post) HasCoordinates() bool {
	return p.Lat != nil && p.Lon != nil
}

// RiskReport is the per-upload summary handed to downstream consumers.
type RiskReport struct {
	UploadID    string            `json:"upload_id"`
	FileName    string            `json:"file_name"`
	TotalRows   int               `json:"total_rows"`
	MappedRows  int               `json:"mapped_rows"`
	RiskCounts  map[RiskLevel]int `json:"risk_counts"`
	CenterLat   float64           `json:"center_lat"`
	CenterLon   float64           `json:"center_lon"`
	MostSevere  []string          `json:"most_severe,omitempty"`
	ProcessedAt time.Time         `json:"processed_at"`
}
