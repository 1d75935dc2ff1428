// Package detect finds raw corner candidates on one pyramid level using a
// grid of FAST detections with a two-threshold fallback.
package detect

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"orb-extract/internal/feature"
	"orb-extract/internal/pyramid"
	"orb-extract/pkg/geometry"
)

// cellSize is the target edge of one detection cell in pixels. Remainder
// columns and rows are dropped rather than stretched.
const cellSize = 35

// fastMargin is the ring FAST cannot score, so adjacent cells overlap by
// twice this to keep coverage seamless.
const fastMargin = 3

// UsableRect returns the sub-rectangle of a level image inside which corner
// candidates may be placed: every later sampling patch around a candidate
// must stay within the padded bounds.
func UsableRect(width, height int) geometry.RectInt {
	min := feature.EdgeThreshold - fastMargin
	return geometry.RectInt{
		X:      min,
		Y:      min,
		Width:  width - feature.EdgeThreshold + fastMargin - min,
		Height: height - feature.EdgeThreshold + fastMargin - min,
	}
}

// GridDetector runs FAST over a cell grid, retrying empty cells at a looser
// threshold. Per-cell thresholding keeps texture-poor regions (sky, walls)
// from starving spatial coverage without lowering selectivity globally.
type GridDetector struct {
	ini gocv.FastFeatureDetector
	min gocv.FastFeatureDetector
}

// NewGridDetector creates the two FAST detector handles. Close must be
// called to release them.
func NewGridDetector(iniThreshold, minThreshold int) (*GridDetector, error) {
	if minThreshold <= 0 || iniThreshold < minThreshold {
		return nil, fmt.Errorf("invalid FAST thresholds: ini=%d min=%d", iniThreshold, minThreshold)
	}
	return &GridDetector{
		ini: gocv.NewFastFeatureDetectorWithParams(iniThreshold, true, gocv.FastFeatureDetectorType916),
		min: gocv.NewFastFeatureDetectorWithParams(minThreshold, true, gocv.FastFeatureDetectorType916),
	}, nil
}

// Close releases the detector handles.
func (d *GridDetector) Close() {
	d.ini.Close()
	d.min.Close()
}

// DetectLevel returns the raw corner candidates of one level, positioned in
// usable-rect-local coordinates. A level whose usable rectangle has
// non-positive size contributes no candidates.
func (d *GridDetector) DetectLevel(level *pyramid.Level) []feature.KeyPoint {
	usable := UsableRect(level.Width, level.Height)
	if usable.Empty() {
		return nil
	}

	width := usable.Width
	height := usable.Height

	nCols := width / cellSize
	nRows := height / cellSize
	if nCols < 1 {
		nCols = 1
	}
	if nRows < 1 {
		nRows = 1
	}
	wCell := ceilDiv(width, nCols)
	hCell := ceilDiv(height, nRows)

	maxBorderX := usable.X + width
	maxBorderY := usable.Y + height

	var candidates []feature.KeyPoint
	for i := 0; i < nRows; i++ {
		iniY := usable.Y + i*hCell
		if iniY >= maxBorderY-fastMargin {
			continue
		}
		maxY := iniY + hCell + 2*fastMargin
		if maxY > maxBorderY {
			maxY = maxBorderY
		}

		for j := 0; j < nCols; j++ {
			iniX := usable.X + j*wCell
			if iniX >= maxBorderX-2*fastMargin {
				continue
			}
			maxX := iniX + wCell + 2*fastMargin
			if maxX > maxBorderX {
				maxX = maxBorderX
			}

			cell := level.Image.Region(image.Rect(iniX, iniY, maxX, maxY))
			kps := d.ini.Detect(cell)
			if len(kps) == 0 {
				kps = d.min.Detect(cell)
			}
			cell.Close()

			for _, kp := range kps {
				candidates = append(candidates, feature.KeyPoint{
					Pt: geometry.Point2D{
						X: kp.X + float64(j*wCell),
						Y: kp.Y + float64(i*hCell),
					},
					Angle:    -1,
					Response: kp.Response,
				})
			}
		}
	}
	return candidates
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
