// Package diag computes summary statistics over an extraction result, used
// by the CLI and by tests to quantify how evenly the keypoints spread.
package diag

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"orb-extract/internal/feature"
)

// Stats summarizes one extraction result.
type Stats struct {
	Count   int
	Mono    int
	Overlap int

	// Response distribution of the retained keypoints.
	ResponseMean   float64
	ResponseStdDev float64

	// Coordinate spread in level-0 pixels. A spatially decorrelated set
	// has standard deviations approaching a uniform distribution over
	// the usable image rectangle (width/sqrt(12) per axis).
	XStdDev float64
	YStdDev float64

	// PerOctave counts keypoints by pyramid level.
	PerOctave map[int]int
}

// Collect computes Stats for a result.
func Collect(res *feature.Result) Stats {
	s := Stats{
		Count:     len(res.Keypoints),
		Mono:      res.Mono,
		Overlap:   len(res.Keypoints) - res.Mono,
		PerOctave: make(map[int]int),
	}
	if s.Count == 0 {
		return s
	}

	responses := make([]float64, s.Count)
	xs := make([]float64, s.Count)
	ys := make([]float64, s.Count)
	for i, kp := range res.Keypoints {
		responses[i] = kp.Response
		xs[i] = kp.Pt.X
		ys[i] = kp.Pt.Y
		s.PerOctave[kp.Octave]++
	}

	s.ResponseMean, s.ResponseStdDev = meanStdDev(responses)
	_, s.XStdDev = meanStdDev(xs)
	_, s.YStdDev = meanStdDev(ys)
	return s
}

func meanStdDev(xs []float64) (float64, float64) {
	if len(xs) < 2 {
		return stat.Mean(xs, nil), 0
	}
	mean, variance := stat.MeanVariance(xs, nil)
	return mean, math.Sqrt(variance)
}
