// Package domain models geotagged social-media posts about urban flooding and
// the coarse risk levels derived from them.
//
// # Input Data
//
// Posts arrive as rows of a user-uploaded spreadsheet. The dashboard this
// service replaces was built for Seoul, so headers are usually Korean
// (날짜, 작성자 ID, 내용, 감성결과, 위도, 경도) but English names are accepted
// as well. Header matching is done by the spreadsheet package; this package
// only sees typed [Post] values.
//
// Different exports carry different sentiment fields:
//
//	sentiment_score   signed float, roughly [-1, 1]; more negative means
//	                  more distress, which is used as a flood risk proxy
//	total_risk_score  a precombined 1–3 score from an upstream tool
//	sentiment_label   a categorical label such as "부정" (negative)
//
// # Risk Levels
//
// Every post ends up with exactly one [RiskLevel]:
//
//	3 high    sentiment <= -0.5
//	2 medium  -0.5 < sentiment < 0
//	1 low     sentiment >= 0, or nothing usable supplied
//
// The -0.5 boundary belongs to level 3. [ResolveRisk] prefers a raw
// sentiment score, then a combined risk score (rounded and clamped), then a
// label from a fixed vocabulary, and finally defaults to level 1 so that
// rendering always has a level to draw.
//
// # Styling
//
// Marker color and radius and chart bar colors all come from one lookup
// table, [StyleFor], so the map and the chart cannot disagree.
package domain
