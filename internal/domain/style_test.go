package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyleFor(t *testing.T) {
	assert.Equal(t, "blue", StyleFor(RiskLow).Color)
	assert.Equal(t, "orange", StyleFor(RiskMedium).Color)
	assert.Equal(t, "red", StyleFor(RiskHigh).Color)
}

func TestStyleFor_RadiusGrowsWithRisk(t *testing.T) {
	assert.Less(t, StyleFor(RiskLow).Radius, StyleFor(RiskMedium).Radius)
	assert.Less(t, StyleFor(RiskMedium).Radius, StyleFor(RiskHigh).Radius)
}

func TestStyleFor_OutOfRange(t *testing.T) {
	assert.Equal(t, StyleFor(RiskLow), StyleFor(0))
	assert.Equal(t, StyleFor(RiskLow), StyleFor(9))
}
