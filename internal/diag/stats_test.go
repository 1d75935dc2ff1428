package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"orb-extract/internal/feature"
	"orb-extract/pkg/geometry"
)

func TestCollectEmpty(t *testing.T) {
	s := Collect(&feature.Result{})
	assert.Equal(t, 0, s.Count)
	assert.Equal(t, 0, s.Mono)
	assert.Empty(t, s.PerOctave)
}

func TestCollect(t *testing.T) {
	res := &feature.Result{
		Keypoints: []feature.KeyPoint{
			{Pt: geometry.Point2D{X: 10, Y: 20}, Octave: 0, Response: 40},
			{Pt: geometry.Point2D{X: 30, Y: 20}, Octave: 0, Response: 60},
			{Pt: geometry.Point2D{X: 50, Y: 20}, Octave: 2, Response: 50},
		},
		Descriptors: make([]feature.Descriptor, 3),
		Mono:        2,
	}

	s := Collect(res)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 2, s.Mono)
	assert.Equal(t, 1, s.Overlap)
	assert.InDelta(t, 50.0, s.ResponseMean, 1e-9)
	assert.InDelta(t, 10.0, s.ResponseStdDev, 1e-9)
	assert.InDelta(t, 20.0, s.XStdDev, 1e-9)
	assert.InDelta(t, 0.0, s.YStdDev, 1e-9)
	assert.Equal(t, map[int]int{0: 2, 2: 1}, s.PerOctave)
}
