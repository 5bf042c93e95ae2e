package client

import (
	"testing"

	"github.com/otiai10/gosseract/v2"
	"github.com/stretchr/testify/assert"
)

func TestAverageConfidence(t *testing.T) {
	boxes := []gosseract.BoundingBox{
		{Word: "Total", Confidence: 90},
		{Word: "450", Confidence: 70},
		{Word: "Rs", Confidence: 80},
	}

	assert.InDelta(t, 80.0, averageConfidence(boxes), 1e-9)
}

func TestAverageConfidenceNoBoxes(t *testing.T) {
	assert.Equal(t, 0.0, averageConfidence(nil))
	assert.Equal(t, 0.0, averageConfidence([]gosseract.BoundingBox{}))
}
