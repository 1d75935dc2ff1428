package distribute

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orb-extract/internal/feature"
	"orb-extract/pkg/geometry"
)

func makeCandidates(rng *rand.Rand, n, width, height int) []feature.KeyPoint {
	kps := make([]feature.KeyPoint, n)
	for i := range kps {
		kps[i] = feature.KeyPoint{
			Pt: geometry.Point2D{
				X: rng.Float64() * float64(width-1),
				Y: rng.Float64() * float64(height-1),
			},
			Angle:    -1,
			Response: rng.Float64() * 100,
		}
	}
	return kps
}

func TestRetainEmptyInput(t *testing.T) {
	bounds := geometry.RectInt{Width: 600, Height: 400}
	assert.Nil(t, Retain(nil, bounds, 100))
	assert.Nil(t, Retain([]feature.KeyPoint{}, bounds, 100))
}

func TestRetainKeepsAllWhenBelowTarget(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	bounds := geometry.RectInt{Width: 600, Height: 400}
	candidates := makeCandidates(rng, 40, 600, 400)

	got := Retain(candidates, bounds, 100)
	require.Len(t, got, 40)

	// Every candidate ends up alone in a terminal node, so the retained
	// set is the input set (order aside).
	want := map[geometry.Point2D]float64{}
	for _, kp := range candidates {
		want[kp.Pt] = kp.Response
	}
	for _, kp := range got {
		resp, ok := want[kp.Pt]
		require.True(t, ok, "retained keypoint not in input set")
		assert.Equal(t, resp, kp.Response)
		delete(want, kp.Pt)
	}
	assert.Empty(t, want)
}

func TestRetainBoundsOvershoot(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	bounds := geometry.RectInt{Width: 600, Height: 400}

	for _, target := range []int{25, 100, 300} {
		candidates := makeCandidates(rng, 5000, 600, 400)
		got := Retain(candidates, bounds, target)

		assert.NotEmpty(t, got)
		// The quad-tree stops splitting as soon as the node count reaches
		// the target, so overshoot is bounded by one split round.
		assert.LessOrEqual(t, len(got), target*4)
		assert.GreaterOrEqual(t, len(got), target/2)
	}
}

func TestRetainOnePerLeaf(t *testing.T) {
	// A tight cluster cannot yield more keypoints than distinct positions:
	// every surviving node holds exactly one retained candidate.
	var candidates []feature.KeyPoint
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			candidates = append(candidates, feature.KeyPoint{
				Pt:       geometry.Point2D{X: 100 + float64(i), Y: 100 + float64(j)},
				Response: float64(i*10 + j),
			})
		}
	}
	bounds := geometry.RectInt{Width: 600, Height: 400}

	got := Retain(candidates, bounds, 50)
	seen := map[geometry.Point2D]bool{}
	for _, kp := range got {
		assert.False(t, seen[kp.Pt], "same candidate retained twice")
		seen[kp.Pt] = true
	}
}

func TestRetainPrefersHighestResponse(t *testing.T) {
	// One dominant candidate per quadrant of the rectangle plus weak
	// neighbours; the dominant one must survive.
	bounds := geometry.RectInt{Width: 400, Height: 400}
	var candidates []feature.KeyPoint
	centers := []geometry.Point2D{
		{X: 100, Y: 100}, {X: 300, Y: 100}, {X: 100, Y: 300}, {X: 300, Y: 300},
	}
	for _, c := range centers {
		candidates = append(candidates, feature.KeyPoint{Pt: c, Response: 500})
		for d := 1.0; d <= 3; d++ {
			candidates = append(candidates,
				feature.KeyPoint{Pt: geometry.Point2D{X: c.X + d, Y: c.Y}, Response: d},
				feature.KeyPoint{Pt: geometry.Point2D{X: c.X, Y: c.Y + d}, Response: d})
		}
	}

	got := Retain(candidates, bounds, 4)
	require.Len(t, got, 4)
	for _, kp := range got {
		assert.Equal(t, 500.0, kp.Response)
	}
}

func TestRetainDeterministic(t *testing.T) {
	bounds := geometry.RectInt{Width: 600, Height: 400}
	for _, target := range []int{10, 100, 500} {
		rng := rand.New(rand.NewSource(3))
		candidates := makeCandidates(rng, 3000, 600, 400)

		first := Retain(candidates, bounds, target)
		second := Retain(candidates, bounds, target)
		assert.Equal(t, first, second)
	}
}

func TestDivideNeverSplitsSingletons(t *testing.T) {
	n := &quadNode{
		ul: geometry.PointInt{X: 0, Y: 0},
		ur: geometry.PointInt{X: 100, Y: 0},
		bl: geometry.PointInt{X: 0, Y: 100},
		br: geometry.PointInt{X: 100, Y: 100},
		keys: []feature.KeyPoint{
			{Pt: geometry.Point2D{X: 10, Y: 10}},
			{Pt: geometry.Point2D{X: 90, Y: 90}},
		},
	}
	children := n.divide()

	// Both candidates land alone in their quadrant and the quadrants are
	// marked terminal.
	assert.Len(t, children[0].keys, 1)
	assert.True(t, children[0].noMore)
	assert.Len(t, children[3].keys, 1)
	assert.True(t, children[3].noMore)
	assert.Empty(t, children[1].keys)
	assert.Empty(t, children[2].keys)
}

func TestDivideMidlineGoesToBottomRight(t *testing.T) {
	// A point exactly on a midline fails the strict "<" test and belongs
	// to the quadrant right of / below the line.
	n := &quadNode{
		ul: geometry.PointInt{X: 0, Y: 0},
		ur: geometry.PointInt{X: 100, Y: 0},
		bl: geometry.PointInt{X: 0, Y: 100},
		br: geometry.PointInt{X: 100, Y: 100},
		keys: []feature.KeyPoint{
			{Pt: geometry.Point2D{X: 50, Y: 10}},
			{Pt: geometry.Point2D{X: 10, Y: 50}},
			{Pt: geometry.Point2D{X: 50, Y: 50}},
		},
	}
	children := n.divide()

	assert.Empty(t, children[0].keys)
	assert.Len(t, children[1].keys, 1) // x on midline, y above
	assert.Len(t, children[2].keys, 1) // y on midline, x left
	assert.Len(t, children[3].keys, 1) // both on midline
}
