package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeepForImage(t *testing.T) {
	tests := []struct {
		name string
		det  Detection
		keep bool
	}{
		{"target label low conf", Detection{Label: "drone", Confidence: 0.1}, true},
		{"target label mixed case", Detection{Label: "UAV", Confidence: 0.1}, true},
		{"other label high conf", Detection{Label: "bird", Confidence: 0.9}, true},
		{"other label at threshold", Detection{Label: "bird", Confidence: 0.5}, false},
		{"other label low conf", Detection{Label: "bird", Confidence: 0.2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.keep, tt.det.KeepForImage())
		})
	}
}

func TestFilterForImageIdempotent(t *testing.T) {
	raw := []Detection{
		{Label: "drone", Confidence: 0.3, Box: BoundingBox{X1: 1, Y1: 1, X2: 5, Y2: 5}},
		{Label: "bird", Confidence: 0.2, Box: BoundingBox{X1: 2, Y1: 2, X2: 6, Y2: 6}},
		{Label: "kite", Confidence: 0.8, Box: BoundingBox{X1: 3, Y1: 3, X2: 7, Y2: 7}},
	}

	once := FilterForImage(raw)
	twice := FilterForImage(once)

	assert.Len(t, once, 2)
	assert.Equal(t, once, twice)
}

func TestFilterForImageEmpty(t *testing.T) {
	assert.Empty(t, FilterForImage(nil))
}
