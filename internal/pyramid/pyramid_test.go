package pyramid

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"orb-extract/internal/feature"
)

func noiseMat(seed int64, w, h int) gocv.Mat {
	rng := rand.New(rand.NewSource(seed))
	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC1)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			mat.SetUCharAt(y, x, uint8(rng.Intn(256)))
		}
	}
	return mat
}

func TestBuildLevelSizes(t *testing.T) {
	scales, err := NewScaleLevels(1000, 1.2, 8)
	require.NoError(t, err)

	base := noiseMat(1, 640, 480)
	defer base.Close()

	p, err := Build(base, scales, gocv.InterpolationLinear)
	require.NoError(t, err)
	defer p.Close()

	require.Equal(t, 8, p.NLevels())

	// Level 0 matches the base exactly; level i is the base scaled by the
	// inverse cumulative factor, rounded per dimension.
	assert.Equal(t, 640, p.Level(0).Width)
	assert.Equal(t, 480, p.Level(0).Height)
	for i := 0; i < p.NLevels(); i++ {
		lv := p.Level(i)
		assert.Equal(t, int(math.Round(640*scales.InvFactors[i])), lv.Width)
		assert.Equal(t, int(math.Round(480*scales.InvFactors[i])), lv.Height)

		// The padded image carries the fixed border on all four sides.
		assert.Equal(t, lv.Width+2*feature.EdgeThreshold, lv.Padded.Cols())
		assert.Equal(t, lv.Height+2*feature.EdgeThreshold, lv.Padded.Rows())
		assert.Equal(t, lv.Width, lv.Image.Cols())
		assert.Equal(t, lv.Height, lv.Image.Rows())
	}
}

func TestBuildLevelZeroPixelsUntouched(t *testing.T) {
	scales, err := NewScaleLevels(500, 1.5, 3)
	require.NoError(t, err)

	base := noiseMat(2, 64, 48)
	defer base.Close()

	p, err := Build(base, scales, gocv.InterpolationLinear)
	require.NoError(t, err)
	defer p.Close()

	lv := p.Level(0)
	data, stride, err := lv.Data()
	require.NoError(t, err)
	require.Equal(t, lv.Padded.Cols(), stride)

	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			want := base.GetUCharAt(y, x)
			got := data[(y+feature.EdgeThreshold)*stride+x+feature.EdgeThreshold]
			require.Equal(t, want, got, "pixel (%d,%d)", x, y)
		}
	}
}

func TestBuildReflectiveBorder(t *testing.T) {
	scales, err := NewScaleLevels(100, 1.2, 1)
	require.NoError(t, err)

	base := noiseMat(3, 64, 48)
	defer base.Close()

	p, err := Build(base, scales, gocv.InterpolationLinear)
	require.NoError(t, err)
	defer p.Close()

	data, stride, err := p.Level(0).Data()
	require.NoError(t, err)

	// Reflect-101 mirrors without duplicating the edge pixel: one left of
	// the image reads column 1, one above reads row 1.
	const e = feature.EdgeThreshold
	assert.Equal(t, base.GetUCharAt(0, 1), data[e*stride+e-1])
	assert.Equal(t, base.GetUCharAt(1, 0), data[(e-1)*stride+e])
	assert.Equal(t, base.GetUCharAt(0, 62), data[e*stride+e+64])
	assert.Equal(t, base.GetUCharAt(46, 0), data[(e+48)*stride+e])
}

func TestBuildRejectsEmptyAndWrongType(t *testing.T) {
	scales, err := NewScaleLevels(1000, 1.2, 8)
	require.NoError(t, err)

	empty := gocv.NewMat()
	defer empty.Close()
	_, err = Build(empty, scales, gocv.InterpolationLinear)
	assert.Error(t, err)

	bgr := gocv.NewMatWithSize(48, 64, gocv.MatTypeCV8UC3)
	defer bgr.Close()
	_, err = Build(bgr, scales, gocv.InterpolationLinear)
	assert.Error(t, err)
}

func TestBuildTinyImage(t *testing.T) {
	// Deep levels of a tiny image shrink toward nothing; building must
	// still succeed and report the rounded sizes.
	scales, err := NewScaleLevels(100, 2.0, 5)
	require.NoError(t, err)

	base := noiseMat(4, 40, 30)
	defer base.Close()

	p, err := Build(base, scales, gocv.InterpolationLinear)
	require.NoError(t, err)
	defer p.Close()

	for i := 0; i < p.NLevels(); i++ {
		assert.Equal(t, int(math.Round(40*scales.InvFactors[i])), p.Level(i).Width)
	}
}
