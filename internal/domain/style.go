package domain

// Style is the shared visual encoding of a risk level.
type Style struct {
	Color  string  `json:"color"`
	Radius float64 `json:"radius"`
	Label  string  `json:"label"`
}

var riskStyles = map[RiskLevel]Style{
	RiskLow:    {Color: "blue", Radius: 6, Label: "low"},
	RiskMedium: {Color: "orange", Radius: 9, Label: "medium"},
	RiskHigh:   {Color: "red", Radius: 12, Label: "high"},
}

// StyleFor returns the marker and bar style for a level. Out-of-range levels
// get the low-risk style.
func StyleFor(level RiskLevel) Style {
	if s, ok := riskStyles[level]; ok {
		return s
	}
	return riskStyles[RiskLow]
}
