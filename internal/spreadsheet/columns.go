package spreadsheet

import (
	"strings"
	"unicode"
)

// Canonical column names.
const (
	ColTimestamp      = "timestamp"
	ColAuthorID       = "author_id"
	ColText           = "text"
	ColLatitude       = "latitude"
	ColLongitude      = "longitude"
	ColPlaceName      = "place_name"
	ColSentimentScore = "sentiment_score"
	ColSentimentLabel = "sentiment_label"
	ColTotalRiskScore = "total_risk_score"
)

// RequiredColumns must be present in every upload, reported in this order.
var RequiredColumns = []string{ColLatitude, ColLongitude, ColText}

// columnAliases lists accepted header spellings per canonical column, already
// in normalized form. Korean names match the original Seoul exports.
var columnAliases = map[string][]string{
	ColTimestamp:      {"timestamp", "date", "datetime", "created_at", "날짜", "작성일"},
	ColAuthorID:       {"author_id", "author", "user_id", "작성자_id", "작성자"},
	ColText:           {"text", "content", "body", "message", "내용", "본문"},
	ColLatitude:       {"latitude", "lat", "위도"},
	ColLongitude:      {"longitude", "lon", "lng", "long", "경도"},
	ColPlaceName:      {"place_name", "place", "location", "장소", "지역", "지명"},
	ColSentimentScore: {"sentiment_score", "sentiment", "score", "감성점수", "감성_점수"},
	ColSentimentLabel: {"sentiment_label", "label", "감성결과", "감성"},
	ColTotalRiskScore: {"total_risk_score", "risk_score", "위험도", "위험점수"},
}

// aliasIndex maps a normalized header to its canonical column.
var aliasIndex = func() map[string]string {
	idx := make(map[string]string)
	for canonical, aliases := range columnAliases {
		for _, a := range aliases {
			idx[a] = canonical
		}
	}
	return idx
}()

// normalizeHeader lower-cases a header, trims it, and collapses runs of
// whitespace, underscores and hyphens into a single underscore.
// "  작성자 ID " and "Author-ID" become "작성자_id" and "author_id".
func normalizeHeader(h string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(strings.TrimSpace(h)) {
		if unicode.IsSpace(r) || r == '_' || r == '-' {
			pendingSep = true
			continue
		}
		if pendingSep && b.Len() > 0 {
			b.WriteByte('_')
		}
		pendingSep = false
		b.WriteRune(r)
	}
	return b.String()
}

// canonicalColumn returns the canonical name for a raw header, if any.
func canonicalColumn(header string) (string, bool) {
	c, ok := aliasIndex[normalizeHeader(header)]
	return c, ok
}
