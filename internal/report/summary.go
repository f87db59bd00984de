package report

import (
	"cmp"
	"math"
	"slices"

	"github.com/couchcryptid/flood-risk-dashboard/internal/domain"
)

// SummaryOptions configures the summary view.
type SummaryOptions struct {
	TopN          int
	PreviewRows   int
	PreviewLength int
}

// RiskCount is the number of posts at one risk level.
type RiskCount struct {
	Level domain.RiskLevel `json:"risk_level"`
	Count int              `json:"count"`
	Color string           `json:"color"`
	Label string           `json:"label"`
}

// SeverePost is one entry of the most-severe listing.
type SeverePost struct {
	Row            int              `json:"row"`
	Place          string           `json:"place"`
	SentimentScore *float64         `json:"sentiment_score,omitempty"`
	Risk           domain.RiskLevel `json:"risk_level"`
	Preview        string           `json:"preview"`
}

// PreviewRow is one line of the raw data preview table.
type PreviewRow struct {
	Row            int              `json:"row"`
	Content        string           `json:"content"`
	SentimentLabel string           `json:"sentiment_label"`
	SentimentScore *float64         `json:"sentiment_score,omitempty"`
	Risk           domain.RiskLevel `json:"risk_level"`
}

// PreviewTable is the first rows of an upload plus the full row count.
type PreviewTable struct {
	Rows      []PreviewRow `json:"rows"`
	TotalRows int          `json:"total_rows"`
}

// Summary bundles the tabular and chart views of one upload.
type Summary struct {
	TotalRows  int          `json:"total_rows"`
	MappedRows int          `json:"mapped_rows"`
	Counts     []RiskCount  `json:"counts"`
	Chart      Chart        `json:"-"`
	MostSevere []SeverePost `json:"most_severe"`
	Preview    PreviewTable `json:"preview"`
}

// BuildSummary aggregates every post, including those without coordinates.
func BuildSummary(posts []domain.Post, opts SummaryOptions) Summary {
	counts := CountByRisk(posts)
	mapped := 0
	for _, p := range posts {
		if p.HasCoordinates() {
			mapped++
		}
	}
	return Summary{
		TotalRows:  len(posts),
		MappedRows: mapped,
		Counts:     counts,
		Chart:      BuildChart(counts),
		MostSevere: TopSevere(posts, opts.TopN, opts.PreviewLength),
		Preview:    Preview(posts, opts.PreviewRows),
	}
}

// CountByRisk counts posts per level, levels ascending, zero counts included.
// Posts with an out-of-range level are counted as low risk.
func CountByRisk(posts []domain.Post) []RiskCount {
	tally := make(map[domain.RiskLevel]int, len(domain.RiskLevels))
	for _, p := range posts {
		level := p.Risk
		if !level.Valid() {
			level = domain.RiskLow
		}
		tally[level]++
	}

	counts := make([]RiskCount, 0, len(domain.RiskLevels))
	for _, level := range domain.RiskLevels {
		style := domain.StyleFor(level)
		counts = append(counts, RiskCount{
			Level: level,
			Count: tally[level],
			Color: style.Color,
			Label: style.Label,
		})
	}
	return counts
}

// TopSevere returns the n posts with the most negative sentiment score,
// most negative first. Posts without a score sort after all scored posts and
// keep their upload order. The result has min(n, len(posts)) entries.
func TopSevere(posts []domain.Post, n, previewLen int) []SeverePost {
	if n <= 0 || len(posts) == 0 {
		return []SeverePost{}
	}

	sorted := slices.Clone(posts)
	slices.SortStableFunc(sorted, func(a, b domain.Post) int {
		return cmp.Compare(sortScore(a), sortScore(b))
	})

	n = min(n, len(sorted))
	out := make([]SeverePost, 0, n)
	for _, p := range sorted[:n] {
		out = append(out, SeverePost{
			Row:            p.Row,
			Place:          domain.DisplayPlace(p),
			SentimentScore: p.SentimentScore,
			Risk:           p.Risk,
			Preview:        domain.Truncate(p.Text, previewLen),
		})
	}
	return out
}

func sortScore(p domain.Post) float64 {
	if p.SentimentScore == nil || math.IsNaN(*p.SentimentScore) {
		return math.Inf(1)
	}
	return *p.SentimentScore
}

// Preview returns the first n rows of content, sentiment and risk columns.
func Preview(posts []domain.Post, n int) PreviewTable {
	n = max(0, min(n, len(posts)))
	rows := make([]PreviewRow, 0, n)
	for _, p := range posts[:n] {
		rows = append(rows, PreviewRow{
			Row:            p.Row,
			Content:        p.Text,
			SentimentLabel: p.SentimentLabel,
			SentimentScore: p.SentimentScore,
			Risk:           p.Risk,
		})
	}
	return PreviewTable{Rows: rows, TotalRows: len(posts)}
}
