// Package orient estimates a dominant direction per keypoint with the
// intensity-centroid method over a circular patch.
package orient

import (
	"math"

	"orb-extract/internal/feature"
)

// CircularSpans precomputes, for each row offset v from the patch center,
// the half-span of the discretized circle of the given half-width. The
// spans are symmetric top/bottom and corrected near the 45-degree point so
// they are monotonically non-increasing away from the center row; without
// the correction the rounded circle loses its diagonal symmetry.
func CircularSpans(halfPatch int) []int {
	umax := make([]int, halfPatch+1)

	vmax := int(math.Floor(float64(halfPatch)*math.Sqrt2/2 + 1))
	vmin := int(math.Ceil(float64(halfPatch) * math.Sqrt2 / 2))
	hp2 := float64(halfPatch * halfPatch)
	for v := 0; v <= vmax; v++ {
		umax[v] = int(math.Round(math.Sqrt(hp2 - float64(v*v))))
	}

	v0 := 0
	for v := halfPatch; v >= vmin; v-- {
		for umax[v0] == umax[v0+1] {
			v0++
		}
		umax[v] = v0
		v0++
	}
	return umax
}

// ICAngle returns the intensity-centroid orientation of the patch centered
// at (cx, cy) in the pixel buffer data with row stride. The angle is in
// degrees in [0, 360), matching OpenCV's fastAtan2 convention that the
// descriptor stage converts back to radians. The caller guarantees the
// whole patch is in bounds (pyramid border).
func ICAngle(data []uint8, stride, cx, cy int, umax []int) float64 {
	center := cy*stride + cx
	halfPatch := len(umax) - 1

	var m01, m10 int

	// Center row, v = 0.
	for u := -halfPatch; u <= halfPatch; u++ {
		m10 += u * int(data[center+u])
	}

	// Remaining rows in mirrored pairs.
	for v := 1; v <= halfPatch; v++ {
		vSum := 0
		d := umax[v]
		for u := -d; u <= d; u++ {
			valPlus := int(data[center+u+v*stride])
			valMinus := int(data[center+u-v*stride])
			vSum += valPlus - valMinus
			m10 += u * (valPlus + valMinus)
		}
		m01 += v * vSum
	}

	angle := math.Atan2(float64(m01), float64(m10)) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}
	return angle
}

// Assign computes and stores the orientation of every keypoint. Keypoint
// positions are level-image coordinates; ex/ey shift them into the padded
// buffer's frame.
func Assign(data []uint8, stride int, keypoints []feature.KeyPoint, ex, ey int, umax []int) {
	for i := range keypoints {
		cx := int(math.Round(keypoints[i].Pt.X)) + ex
		cy := int(math.Round(keypoints[i].Pt.Y)) + ey
		keypoints[i].Angle = ICAngle(data, stride, cx, cy, umax)
	}
}
