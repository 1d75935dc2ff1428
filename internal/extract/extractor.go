package extract

import (
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"
	"golang.org/x/sync/errgroup"

	"orb-extract/internal/descriptor"
	"orb-extract/internal/detect"
	"orb-extract/internal/distribute"
	"orb-extract/internal/feature"
	"orb-extract/internal/orient"
	"orb-extract/internal/pyramid"
)

// OverlapBand is the horizontal coordinate range, in level-0 coordinates,
// visible to both cameras of a dual-camera rig. Keypoints inside it are
// written to the tail of the result so the caller can slice mono and
// overlap ranges without re-scanning.
type OverlapBand struct {
	Min float64
	Max float64
}

func (b OverlapBand) contains(x float64) bool {
	return x >= b.Min && x <= b.Max
}

// Extractor extracts keypoints and binary descriptors from grayscale
// images. It is configured once and reused across calls; each call rebuilds
// its own pyramid, so an Extractor holds no per-image state between calls.
type Extractor struct {
	cfg    Config
	scales pyramid.ScaleLevels
	grid   *detect.GridDetector
	umax   []int
}

// New validates the configuration and builds the extractor. Close must be
// called to release the native detector handles.
func New(cfg Config) (*Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("extractor config: %w", err)
	}
	scales, err := pyramid.NewScaleLevels(cfg.NFeatures, cfg.ScaleFactor, cfg.NLevels)
	if err != nil {
		return nil, fmt.Errorf("extractor config: %w", err)
	}
	grid, err := detect.NewGridDetector(cfg.IniThreshold, cfg.MinThreshold)
	if err != nil {
		return nil, fmt.Errorf("extractor config: %w", err)
	}
	return &Extractor{
		cfg:    cfg,
		scales: scales,
		grid:   grid,
		umax:   orient.CircularSpans(feature.HalfPatchSize),
	}, nil
}

// Close releases the extractor's detector handles.
func (e *Extractor) Close() {
	e.grid.Close()
}

// ScaleLevels exposes the per-level scale configuration. Matchers use the
// sigma-squared values to weight reprojection errors by level.
func (e *Extractor) ScaleLevels() pyramid.ScaleLevels {
	return e.scales
}

// Extract runs one extraction over a single-channel 8-bit image. mask is
// accepted for API compatibility and ignored. An empty image yields an
// empty result, not an error.
func (e *Extractor) Extract(img, mask gocv.Mat) (*feature.Result, error) {
	return e.extract(img, nil)
}

// ExtractWithOverlap is Extract for a dual-camera rig: keypoints whose
// final x-coordinate falls inside band are packed at the tail of the
// result and Result.Mono reports how many are not.
func (e *Extractor) ExtractWithOverlap(img, mask gocv.Mat, band OverlapBand) (*feature.Result, error) {
	return e.extract(img, &band)
}

// levelOutput collects one level's keypoints and descriptors so parallel
// workers write disjoint slots and the merge can run strictly by level
// index.
type levelOutput struct {
	keypoints   []feature.KeyPoint
	descriptors []feature.Descriptor
}

func (e *Extractor) extract(img gocv.Mat, band *OverlapBand) (*feature.Result, error) {
	if img.Empty() {
		return &feature.Result{}, nil
	}

	pyr, err := pyramid.Build(img, e.scales, e.cfg.Interpolation)
	if err != nil {
		return nil, fmt.Errorf("build pyramid: %w", err)
	}
	defer pyr.Close()

	// Detect and spatially redistribute per level. The two FAST detector
	// handles are shared native state, so this stage stays sequential.
	perLevel := make([]levelOutput, e.scales.NLevels())
	for level := 0; level < e.scales.NLevels(); level++ {
		lv := pyr.Level(level)
		usable := detect.UsableRect(lv.Width, lv.Height)

		candidates := e.grid.DetectLevel(lv)
		kps := distribute.Retain(candidates, usable, e.scales.FeaturesPerLevel[level])

		scaledPatch := float64(feature.PatchSize) * e.scales.Factors[level]
		for i := range kps {
			kps[i].Pt.X += float64(usable.X)
			kps[i].Pt.Y += float64(usable.Y)
			kps[i].Octave = level
			kps[i].Size = scaledPatch
		}
		perLevel[level].keypoints = kps
	}

	// Orientation and descriptors have no cross-level dependency; one
	// worker per level, results collected by level index.
	var g errgroup.Group
	for level := 0; level < e.scales.NLevels(); level++ {
		level := level
		g.Go(func() error {
			return e.describeLevel(pyr.Level(level), &perLevel[level])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return e.merge(perLevel, band), nil
}

// describeLevel computes orientations on the level image and descriptors on
// a blurred working copy. The blur runs once per level, before any
// descriptor, to stabilize the binary tests against pixel noise.
func (e *Extractor) describeLevel(lv *pyramid.Level, out *levelOutput) error {
	if len(out.keypoints) == 0 {
		return nil
	}

	data, stride, err := lv.Data()
	if err != nil {
		return err
	}
	if e.cfg.ComputeAngle {
		orient.Assign(data, stride, out.keypoints,
			feature.EdgeThreshold, feature.EdgeThreshold, e.umax)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(lv.Padded, &blurred, image.Point{X: 7, Y: 7}, 2, 2, gocv.BorderReflect101)

	blurData, err := blurred.DataPtrUint8()
	if err != nil {
		return fmt.Errorf("blurred level buffer not addressable: %w", err)
	}

	out.descriptors = make([]feature.Descriptor, len(out.keypoints))
	for i, kp := range out.keypoints {
		cx := int(math.Round(kp.Pt.X)) + feature.EdgeThreshold
		cy := int(math.Round(kp.Pt.Y)) + feature.EdgeThreshold
		out.descriptors[i] = descriptor.Compute(blurData, stride, cx, cy, kp.Angle)
	}
	return nil
}

// merge flattens per-level output into one result. The total is known
// before any write, so the arrays are allocated once: without a band every
// keypoint is appended head-forward; with a band, keypoints inside it are
// written tail-backward, producing two disjoint contiguous index ranges in
// a single pass.
func (e *Extractor) merge(perLevel []levelOutput, band *OverlapBand) *feature.Result {
	total := 0
	for _, lo := range perLevel {
		total += len(lo.keypoints)
	}
	res := &feature.Result{
		Keypoints:   make([]feature.KeyPoint, total),
		Descriptors: make([]feature.Descriptor, total),
	}

	monoIdx := 0
	overlapIdx := total - 1
	for level, lo := range perLevel {
		scale := e.scales.Factors[level]
		for i, kp := range lo.keypoints {
			if level != 0 {
				kp.Pt = kp.Pt.Scale(scale)
			}
			if band != nil && band.contains(kp.Pt.X) {
				res.Keypoints[overlapIdx] = kp
				res.Descriptors[overlapIdx] = lo.descriptors[i]
				overlapIdx--
			} else {
				res.Keypoints[monoIdx] = kp
				res.Descriptors[monoIdx] = lo.descriptors[i]
				monoIdx++
			}
		}
	}
	res.Mono = monoIdx
	return res
}
