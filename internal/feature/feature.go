// Package feature defines the keypoint and descriptor types shared by the
// extraction pipeline, together with the patch geometry constants that tie
// the pyramid border, the orientation patch, and the descriptor sampling
// pattern to each other.
package feature

import (
	"orb-extract/pkg/geometry"
)

const (
	// PatchSize is the nominal diameter of the patch a keypoint describes
	// at its own pyramid level. Keypoint sizes are this value scaled by the
	// level's scale factor.
	PatchSize = 31

	// HalfPatchSize is the half-width of the circular patch used by the
	// orientation estimator.
	HalfPatchSize = 15

	// EdgeThreshold is the border width reserved on every side of each
	// pyramid level. It covers the worst-case sampling offset of both the
	// orientation patch and the rotated descriptor pattern, so the inner
	// loops never bounds-check.
	EdgeThreshold = 19

	// DescriptorBytes is the length of a binary descriptor: 128 pairwise
	// intensity tests packed 8 per byte.
	DescriptorBytes = 16
)

// KeyPoint is one detected feature. Pt is in level-0 image coordinates once
// extraction has finished; inside the pipeline it passes through cell-local
// and level-local frames.
type KeyPoint struct {
	Pt       geometry.Point2D `json:"pt"`
	Octave   int              `json:"octave"`
	Size     float64          `json:"size"`
	Angle    float64          `json:"angle"`
	Response float64          `json:"response"`
}

// Descriptor is a 128-bit binary descriptor. Bit k of byte i holds the
// outcome of intensity test 8*i+k.
type Descriptor [DescriptorBytes]byte

// HammingDistance returns the number of differing bits between two
// descriptors. Matchers rank candidate pairs by this.
func (d Descriptor) HammingDistance(other Descriptor) int {
	n := 0
	for i := 0; i < DescriptorBytes; i++ {
		n += popcount(d[i] ^ other[i])
	}
	return n
}

func popcount(b byte) int {
	n := 0
	for ; b != 0; b &= b - 1 {
		n++
	}
	return n
}

// Result holds one extraction's output. Keypoints and Descriptors are
// parallel slices paired by index. When an overlap band was configured the
// first Mono entries are outside the band (written head-forward) and the
// remaining entries are inside it (written tail-backward); without a band
// Mono equals len(Keypoints).
type Result struct {
	Keypoints   []KeyPoint   `json:"keypoints"`
	Descriptors []Descriptor `json:"descriptors"`
	Mono        int          `json:"mono"`
}

// Empty returns true if the result holds no keypoints.
func (r *Result) Empty() bool {
	return len(r.Keypoints) == 0
}

// MonoRange returns the index range [0, n) of keypoints outside the overlap
// band.
func (r *Result) MonoRange() (int, int) {
	return 0, r.Mono
}

// OverlapRange returns the index range [lo, hi) of keypoints inside the
// overlap band.
func (r *Result) OverlapRange() (int, int) {
	return r.Mono, len(r.Keypoints)
}
