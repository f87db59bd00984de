package report

import "strconv"

// Chart geometry, in SVG user units.
const (
	chartWidth   = 360.0
	chartHeight  = 240.0
	chartTop     = 24.0 // room for the count label above the tallest bar
	chartBottom  = 28.0 // room for the level label under the axis
	chartSideGap = 30.0
	barWidth     = 60.0
	labelOffset  = 6.0
)

// Bar is one bar of the risk-count chart.
type Bar struct {
	X, Y, Width, Height float64
	LabelX, LabelY      float64
	AxisY               float64
	Color               string
	Count               string
	Level               string
}

// Chart is a bar chart of counts per risk level, ready for an SVG template.
type Chart struct {
	Width, Height float64
	BaselineY     float64
	Bars          []Bar
}

// BuildChart lays out one bar per count in the given order. Bar heights are
// proportional to the largest count; an all-zero chart has flat bars.
func BuildChart(counts []RiskCount) Chart {
	c := Chart{
		Width:     chartWidth,
		Height:    chartHeight,
		BaselineY: chartHeight - chartBottom,
	}
	if len(counts) == 0 {
		return c
	}

	maxCount := 0
	for _, rc := range counts {
		maxCount = max(maxCount, rc.Count)
	}

	plotHeight := c.BaselineY - chartTop
	slot := (chartWidth - 2*chartSideGap) / float64(len(counts))
	for i, rc := range counts {
		h := 0.0
		if maxCount > 0 {
			h = plotHeight * float64(rc.Count) / float64(maxCount)
		}
		x := chartSideGap + slot*float64(i) + (slot-barWidth)/2
		y := c.BaselineY - h
		c.Bars = append(c.Bars, Bar{
			X:      x,
			Y:      y,
			Width:  barWidth,
			Height: h,
			LabelX: x + barWidth/2,
			LabelY: y - labelOffset,
			AxisY:  c.BaselineY + chartBottom - 8,
			Color:  rc.Color,
			Count:  strconv.Itoa(rc.Count),
			Level:  strconv.Itoa(int(rc.Level)),
		})
	}
	return c
}
