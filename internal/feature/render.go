package feature

import (
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"
)

// RenderOptions configures how keypoints are drawn onto an image.
type RenderOptions struct {
	// UseSize scales the drawn circle with the keypoint size instead of
	// fixed 3px dots.
	UseSize bool

	// DrawAngle draws a radius line showing the keypoint orientation.
	DrawAngle bool

	// MonoColor and OverlapColor distinguish the two index ranges of a
	// dual-camera result. Results without an overlap band render entirely
	// in MonoColor.
	MonoColor    color.RGBA
	OverlapColor color.RGBA
}

// DefaultRenderOptions returns rendering defaults: green mono keypoints,
// red overlap keypoints, size-scaled circles with orientation ticks.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		UseSize:      true,
		DrawAngle:    true,
		MonoColor:    color.RGBA{0, 220, 0, 255},
		OverlapColor: color.RGBA{220, 0, 0, 255},
	}
}

// RenderOverlay draws the result's keypoints onto dst, which must be a
// 3-channel image in level-0 coordinates.
func RenderOverlay(dst *gocv.Mat, res *Result, opts RenderOptions) {
	for i, kp := range res.Keypoints {
		c := opts.MonoColor
		if i >= res.Mono {
			c = opts.OverlapColor
		}
		center := image.Point{X: int(kp.Pt.X + 0.5), Y: int(kp.Pt.Y + 0.5)}

		radius := 3
		if opts.UseSize && kp.Size > 0 {
			radius = int(kp.Size/2 + 0.5)
		}
		gocv.Circle(dst, center, radius, c, 1)

		if opts.DrawAngle && kp.Angle >= 0 {
			rad := kp.Angle * math.Pi / 180
			tip := image.Point{
				X: center.X + int(float64(radius)*math.Cos(rad)+0.5),
				Y: center.Y + int(float64(radius)*math.Sin(rad)+0.5),
			}
			gocv.Line(dst, center, tip, c, 1)
		}
	}
}
