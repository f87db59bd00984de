package domain

import (
	"math"
	"strings"
)

// highRiskThreshold is inclusive: a score of exactly -0.5 is high risk.
const highRiskThreshold = -0.5

// labelVocabulary maps normalized sentiment or risk labels to levels.
// Korean terms come from the original Seoul exports.
var labelVocabulary = map[string]RiskLevel{
	"negative": RiskHigh,
	"부정":       RiskHigh,
	"high":     RiskHigh,
	"높음":       RiskHigh,
	"위험":       RiskHigh,

	"medium":   RiskMedium,
	"moderate": RiskMedium,
	"보통":       RiskMedium,
	"주의":       RiskMedium,

	"neutral":  RiskLow,
	"중립":       RiskLow,
	"positive": RiskLow,
	"긍정":       RiskLow,
	"low":      RiskLow,
	"낮음":       RiskLow,
	"안전":       RiskLow,
}

// SentimentToRisk maps a raw sentiment score to a risk level:
//   - score <= -0.5 → 3
//   - -0.5 < score < 0 → 2
//   - score >= 0 → 1
//
// NaN maps to 1.
func SentimentToRisk(score float64) RiskLevel {
	switch {
	case math.IsNaN(score):
		return RiskLow
	case score <= highRiskThreshold:
		return RiskHigh
	case score < 0:
		return RiskMedium
	default:
		return RiskLow
	}
}

// RiskFromScore converts a precombined risk score to a level by rounding to
// the nearest integer and clamping into [1, 3]. NaN maps to 1.
func RiskFromScore(v float64) RiskLevel {
	if math.IsNaN(v) {
		return RiskLow
	}
	r := math.Round(v)
	switch {
	case r <= float64(RiskLow):
		return RiskLow
	case r >= float64(RiskHigh):
		return RiskHigh
	default:
		return RiskLevel(r)
	}
}

// RiskFromLabel looks a categorical label up in the fixed vocabulary.
// Matching ignores case and surrounding whitespace.
func RiskFromLabel(label string) (RiskLevel, bool) {
	key := strings.ToLower(strings.TrimSpace(label))
	if key == "" {
		return 0, false
	}
	level, ok := labelVocabulary[key]
	return level, ok
}

// ResolveRisk picks the risk level for a post from whichever field is usable,
// in order: sentiment score, combined risk score, label, default.
func ResolveRisk(p Post) (RiskLevel, RiskSource) {
	if p.SentimentScore != nil && !math.IsNaN(*p.SentimentScore) {
		return SentimentToRisk(*p.SentimentScore), RiskFromSentiment
	}
	if p.TotalRiskScore != nil && !math.IsNaN(*p.TotalRiskScore) {
		return RiskFromScore(*p.TotalRiskScore), RiskFromTotal
	}
	if level, ok := RiskFromLabel(p.SentimentLabel); ok {
		return level, RiskFromLabelText
	}
	return RiskLow, RiskFromDefault
}

// Classify returns a copy of posts with Risk and RiskSource filled in.
// The input slice is not modified.
func Classify(posts []Post) []Post {
	out := make([]Post, len(posts))
	for i, p := range posts {
		p.Risk, p.RiskSource = ResolveRisk(p)
		out[i] = p
	}
	return out
}
