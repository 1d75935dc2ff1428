// Package descriptor computes the 128-bit steered binary descriptor of a
// keypoint from a blurred pyramid level.
package descriptor

import (
	"math"

	"orb-extract/internal/feature"
)

const degToRad = math.Pi / 180

// PatternLen is the number of values in the sampling pattern table.
const PatternLen = len(bitPattern)

// PatternOffset returns the i-th (dx, dy) sample offset of the pattern.
func PatternOffset(i int) (int, int) {
	return int(bitPattern[2*i]), int(bitPattern[2*i+1])
}

// Compute builds the descriptor of the patch centered at (cx, cy) in the
// blurred pixel buffer data with row stride. The sampling offsets are
// rotated by the keypoint angle (degrees); a negative angle means
// orientation was not computed and the pattern is sampled unrotated. The
// caller guarantees all rotated offsets stay in bounds (pyramid border).
//
// For a fixed buffer, position, and angle the output is fully
// deterministic.
func Compute(data []uint8, stride, cx, cy int, angle float64) feature.Descriptor {
	a, b := 1.0, 0.0
	if angle >= 0 {
		rad := angle * degToRad
		a = math.Cos(rad)
		b = math.Sin(rad)
	}

	center := cy*stride + cx
	sample := func(p int) int {
		px := float64(bitPattern[2*p])
		py := float64(bitPattern[2*p+1])
		row := int(math.Round(px*b + py*a))
		col := int(math.Round(px*a - py*b))
		return int(data[center+row*stride+col])
	}

	var desc feature.Descriptor
	p := 0
	for i := 0; i < feature.DescriptorBytes; i++ {
		var val byte
		for bit := 0; bit < 8; bit++ {
			if sample(p) < sample(p+1) {
				val |= 1 << bit
			}
			p += 2
		}
		desc[i] = val
	}
	return desc
}
