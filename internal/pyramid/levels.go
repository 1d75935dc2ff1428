// Package pyramid builds the multi-scale image stack the rest of the
// pipeline samples from: per-level scale bookkeeping and progressively
// downsampled, border-padded grayscale images.
package pyramid

import (
	"fmt"
	"math"
)

// ScaleLevels holds the per-level scale configuration computed once at
// extractor construction. Factors grow geometrically from 1.0 at level 0;
// Sigma2 (scale squared) is exposed for downstream matchers that weight
// measurement uncertainty by level, it is not used during extraction.
type ScaleLevels struct {
	Factors    []float64
	InvFactors []float64
	Sigma2     []float64
	InvSigma2  []float64

	// FeaturesPerLevel is the retention target handed to the spatial
	// distributor at each level. Coarser pyramid levels (closer to the
	// base) get more features, following a geometric series; the last
	// level absorbs the rounding remainder so the sum is exactly the
	// requested total.
	FeaturesPerLevel []int
}

// NewScaleLevels validates the configuration and precomputes all per-level
// values. scaleFactor is the growth of the scale per level and must be > 1
// (images shrink as the level index increases).
func NewScaleLevels(nfeatures int, scaleFactor float64, nlevels int) (ScaleLevels, error) {
	if nfeatures <= 0 {
		return ScaleLevels{}, fmt.Errorf("feature count must be positive, got %d", nfeatures)
	}
	if nlevels <= 0 {
		return ScaleLevels{}, fmt.Errorf("level count must be positive, got %d", nlevels)
	}
	if scaleFactor <= 1 {
		return ScaleLevels{}, fmt.Errorf("scale factor must be > 1, got %g", scaleFactor)
	}

	s := ScaleLevels{
		Factors:          make([]float64, nlevels),
		InvFactors:       make([]float64, nlevels),
		Sigma2:           make([]float64, nlevels),
		InvSigma2:        make([]float64, nlevels),
		FeaturesPerLevel: make([]int, nlevels),
	}

	s.Factors[0] = 1.0
	s.Sigma2[0] = 1.0
	for i := 1; i < nlevels; i++ {
		s.Factors[i] = s.Factors[i-1] * scaleFactor
		s.Sigma2[i] = s.Factors[i] * s.Factors[i]
	}
	for i := 0; i < nlevels; i++ {
		s.InvFactors[i] = 1.0 / s.Factors[i]
		s.InvSigma2[i] = 1.0 / s.Sigma2[i]
	}

	// Geometric feature budget: the base level asks for the most features
	// and each finer level asks for 1/scaleFactor as many.
	factor := 1.0 / scaleFactor
	desired := float64(nfeatures) * (1 - factor) /
		(1 - math.Pow(factor, float64(nlevels)))

	total := 0
	for level := 0; level < nlevels-1; level++ {
		s.FeaturesPerLevel[level] = int(math.Round(desired))
		total += s.FeaturesPerLevel[level]
		desired *= factor
	}
	last := nfeatures - total
	if last < 0 {
		last = 0
	}
	s.FeaturesPerLevel[nlevels-1] = last

	return s, nil
}

// NLevels returns the number of pyramid levels.
func (s ScaleLevels) NLevels() int {
	return len(s.Factors)
}
