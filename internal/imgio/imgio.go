// Package imgio converts between Go images and the single-channel Mats the
// extraction pipeline operates on, so callers can decode PNG/JPEG/TIFF with
// the standard image machinery instead of OpenCV codecs.
package imgio

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// GrayMatFromImage converts any Go image to an 8-bit single-channel Mat
// using the Rec. 601 luma weights. The caller owns the returned Mat.
func GrayMatFromImage(src image.Image) (gocv.Mat, error) {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return gocv.Mat{}, fmt.Errorf("empty image")
	}

	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC1)

	if gray, ok := src.(*image.Gray); ok {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				mat.SetUCharAt(y, x, gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
			}
		}
		return mat, nil
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			mat.SetUCharAt(y, x, uint8((19595*r+38470*g+7471*b+1<<15)>>24))
		}
	}
	return mat, nil
}

// ImageFromGrayMat converts an 8-bit single-channel Mat back to an
// image.Gray, for writing debug output with the standard encoders.
func ImageFromGrayMat(mat gocv.Mat) (*image.Gray, error) {
	if mat.Empty() {
		return nil, fmt.Errorf("empty mat")
	}
	if mat.Type() != gocv.MatTypeCV8UC1 {
		return nil, fmt.Errorf("mat must be 8-bit single channel, got type %d", mat.Type())
	}

	h, w := mat.Rows(), mat.Cols()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: mat.GetUCharAt(y, x)})
		}
	}
	return img, nil
}
