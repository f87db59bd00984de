package spreadsheet

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/flood-risk-dashboard/internal/domain"
	"github.com/xuri/excelize/v2"
)

// missingValues are cell contents treated as absent. "NaN" is also what the
// table returns for cells it considers not available.
var missingValues = map[string]struct{}{
	"":      {},
	"nan":   {},
	"na":    {},
	"n/a":   {},
	"null":  {},
	"none":  {},
	"<nil>": {},
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"2006.01.02",
	"01-02-06", // formatted date text from older exports
}

// Posts maps every data row to a domain.Post. Risk is left unset. Optional
// cells that cannot be parsed are treated as missing.
func (t *Table) Posts() []domain.Post {
	n := t.Len()
	if n == 0 {
		return nil
	}

	text := t.column(ColText)
	lat := t.column(ColLatitude)
	lon := t.column(ColLongitude)
	place := t.column(ColPlaceName)
	author := t.column(ColAuthorID)
	stamp := t.column(ColTimestamp)
	score := t.column(ColSentimentScore)
	label := t.column(ColSentimentLabel)
	total := t.column(ColTotalRiskScore)

	posts := make([]domain.Post, n)
	for i := range n {
		sentiment, sentimentLabel := parseFloat(cell(score, i)), cell(label, i)
		if sentiment == nil && sentimentLabel == "" {
			// A "sentiment" column may carry words rather than numbers.
			sentimentLabel = cell(score, i)
		}
		posts[i] = domain.Post{
			Row:            t.rowNumbers[i],
			Timestamp:      parseTimestamp(cell(stamp, i)),
			AuthorID:       cell(author, i),
			Text:           cell(text, i),
			Lat:            parseFloat(cell(lat, i)),
			Lon:            parseFloat(cell(lon, i)),
			PlaceName:      cell(place, i),
			SentimentScore: sentiment,
			SentimentLabel: sentimentLabel,
			TotalRiskScore: parseFloat(cell(total, i)),
		}
	}
	return posts
}

// cell returns the trimmed value at i, or "" when the column is absent or the
// value is a missing marker.
func cell(col []string, i int) string {
	if i >= len(col) {
		return ""
	}
	v := strings.TrimSpace(col[i])
	if _, missing := missingValues[strings.ToLower(v)]; missing {
		return ""
	}
	return v
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// parseTimestamp accepts common date layouts and raw Excel serial numbers.
func parseTimestamp(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return &ts
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		if ts, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return &ts
		}
	}
	return nil
}
