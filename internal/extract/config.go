// Package extract drives the full keypoint extraction pipeline: pyramid,
// per-cell FAST detection, quad-tree retention, orientation, descriptors,
// and the final merge into one flat result.
package extract

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Config holds the constructor-time extractor configuration.
type Config struct {
	// NFeatures is the total feature budget across all pyramid levels.
	NFeatures int

	// ScaleFactor is the per-level scale growth; must be > 1.
	ScaleFactor float64

	// NLevels is the number of pyramid levels.
	NLevels int

	// IniThreshold is the FAST threshold tried first in every grid cell.
	IniThreshold int

	// MinThreshold is the looser FAST threshold retried in cells the
	// initial threshold left empty.
	MinThreshold int

	// Interpolation selects the resampling method for pyramid levels.
	Interpolation gocv.InterpolationFlags

	// ComputeAngle enables intensity-centroid orientation. When false,
	// keypoint angles stay at -1 and descriptors sample unrotated;
	// callers that do not need rotation invariance save the cost.
	ComputeAngle bool
}

// DefaultConfig returns the configuration used by the SLAM front end:
// 1000 features over 8 levels growing by 1.2, FAST thresholds 20/7.
func DefaultConfig() Config {
	return Config{
		NFeatures:     1000,
		ScaleFactor:   1.2,
		NLevels:       8,
		IniThreshold:  20,
		MinThreshold:  7,
		Interpolation: gocv.InterpolationLinear,
		ComputeAngle:  true,
	}
}

// Validate reports the first contract violation in the configuration.
func (c Config) Validate() error {
	if c.NFeatures <= 0 {
		return fmt.Errorf("feature count must be positive, got %d", c.NFeatures)
	}
	if c.NLevels <= 0 {
		return fmt.Errorf("level count must be positive, got %d", c.NLevels)
	}
	if c.ScaleFactor <= 1 {
		return fmt.Errorf("scale factor must be > 1, got %g", c.ScaleFactor)
	}
	if c.MinThreshold <= 0 || c.IniThreshold < c.MinThreshold {
		return fmt.Errorf("invalid FAST thresholds: ini=%d min=%d", c.IniThreshold, c.MinThreshold)
	}
	return nil
}
