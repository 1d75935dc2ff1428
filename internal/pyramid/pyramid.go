package pyramid

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"

	"orb-extract/internal/feature"
)

// Level is one pyramid image. Padded carries a feature.EdgeThreshold-wide
// reflective border on all four sides; Image is the interior view at the
// level's nominal size and shares pixels with Padded, so sampling windows
// that run past the nominal bounds land in valid border pixels.
type Level struct {
	Padded gocv.Mat
	Image  gocv.Mat
	Width  int
	Height int
}

// Data returns the padded pixel buffer and its row stride. Coordinates into
// the buffer are interior coordinates shifted by feature.EdgeThreshold.
func (l *Level) Data() ([]uint8, int, error) {
	data, err := l.Padded.DataPtrUint8()
	if err != nil {
		return nil, 0, fmt.Errorf("padded level buffer not addressable: %w", err)
	}
	return data, l.Padded.Cols(), nil
}

// Pyramid is the per-call image stack. It owns its Mats and is rebuilt for
// every extraction; Close must be called when the call is done.
type Pyramid struct {
	levels []Level
}

// Build resamples base (8-bit single channel) into one image per configured
// level. Level i's nominal size is the base size scaled by InvFactors[i],
// rounded per dimension; each level after the first is resampled from the
// previous level, not from the base.
func Build(base gocv.Mat, scales ScaleLevels, interp gocv.InterpolationFlags) (*Pyramid, error) {
	if base.Empty() {
		return nil, fmt.Errorf("empty base image")
	}
	if base.Type() != gocv.MatTypeCV8UC1 {
		return nil, fmt.Errorf("base image must be 8-bit single channel, got type %d", base.Type())
	}

	const e = feature.EdgeThreshold
	baseW := base.Cols()
	baseH := base.Rows()

	p := &Pyramid{levels: make([]Level, scales.NLevels())}
	for i := range p.levels {
		w := int(math.Round(float64(baseW) * scales.InvFactors[i]))
		h := int(math.Round(float64(baseH) * scales.InvFactors[i]))

		padded := gocv.NewMat()
		if i == 0 {
			gocv.CopyMakeBorder(base, &padded, e, e, e, e,
				gocv.BorderReflect101, color.RGBA{})
		} else {
			resized := gocv.NewMat()
			gocv.Resize(p.levels[i-1].Image, &resized, image.Point{X: w, Y: h}, 0, 0, interp)
			// Isolated restricts border synthesis to the resized pixels
			// even when the source aliases a larger allocation.
			gocv.CopyMakeBorder(resized, &padded, e, e, e, e,
				gocv.BorderReflect101|gocv.BorderIsolated, color.RGBA{})
			resized.Close()
		}

		inner := padded.Region(image.Rect(e, e, e+w, e+h))
		p.levels[i] = Level{Padded: padded, Image: inner, Width: w, Height: h}
	}
	return p, nil
}

// NLevels returns the number of levels built.
func (p *Pyramid) NLevels() int {
	return len(p.levels)
}

// Level returns the i-th level.
func (p *Pyramid) Level(i int) *Level {
	return &p.levels[i]
}

// Close releases all level images.
func (p *Pyramid) Close() {
	for i := range p.levels {
		p.levels[i].Image.Close()
		p.levels[i].Padded.Close()
	}
	p.levels = nil
}
