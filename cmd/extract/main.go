// Command extract runs keypoint extraction on a grayscale image and prints
// the results.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"gocv.io/x/gocv"

	_ "golang.org/x/image/tiff"

	"orb-extract/internal/diag"
	"orb-extract/internal/extract"
	"orb-extract/internal/feature"
	"orb-extract/internal/imgio"
)

func main() {
	imagePath := flag.String("image", "", "Path to input image (TIFF, PNG, or JPEG)")
	nfeatures := flag.Int("n", 1000, "Total feature budget")
	scaleFactor := flag.Float64("scale", 1.2, "Per-level scale growth factor")
	nlevels := flag.Int("levels", 8, "Number of pyramid levels")
	iniTh := flag.Int("ini-th", 20, "Initial FAST threshold")
	minTh := flag.Int("min-th", 7, "Fallback FAST threshold")
	noAngle := flag.Bool("no-angle", false, "Skip orientation estimation")
	bandMin := flag.Float64("band-min", -1, "Overlap band lower x bound (dual-camera)")
	bandMax := flag.Float64("band-max", -1, "Overlap band upper x bound (dual-camera)")
	outPath := flag.String("out", "", "Write keypoint overlay image to this path")
	verbose := flag.Bool("v", false, "Print every keypoint")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: extract -image <path> [-n 1000] [-levels 8] [-out overlay.png]")
		os.Exit(1)
	}

	f, err := os.Open(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open image: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to decode image: %v\n", err)
		os.Exit(1)
	}
	bounds := img.Bounds()
	fmt.Printf("Loaded %s image: %dx%d pixels\n", format, bounds.Dx(), bounds.Dy())

	gray, err := imgio.GrayMatFromImage(img)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to convert image: %v\n", err)
		os.Exit(1)
	}
	defer gray.Close()

	cfg := extract.DefaultConfig()
	cfg.NFeatures = *nfeatures
	cfg.ScaleFactor = *scaleFactor
	cfg.NLevels = *nlevels
	cfg.IniThreshold = *iniTh
	cfg.MinThreshold = *minTh
	cfg.ComputeAngle = !*noAngle

	fmt.Printf("\nExtractor configuration:\n")
	fmt.Printf("  Features: %d over %d levels, scale %.2f\n", cfg.NFeatures, cfg.NLevels, cfg.ScaleFactor)
	fmt.Printf("  FAST thresholds: %d/%d\n", cfg.IniThreshold, cfg.MinThreshold)
	fmt.Printf("  Orientation: %v\n", cfg.ComputeAngle)

	ex, err := extract.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Bad configuration: %v\n", err)
		os.Exit(1)
	}
	defer ex.Close()

	var res *feature.Result
	mask := gocv.NewMat()
	defer mask.Close()
	if *bandMin >= 0 && *bandMax >= *bandMin {
		band := extract.OverlapBand{Min: *bandMin, Max: *bandMax}
		fmt.Printf("  Overlap band: [%.1f, %.1f]\n", band.Min, band.Max)
		res, err = ex.ExtractWithOverlap(gray, mask, band)
	} else {
		res, err = ex.Extract(gray, mask)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Extraction failed: %v\n", err)
		os.Exit(1)
	}

	stats := diag.Collect(res)
	fmt.Printf("\nExtracted %d keypoints (%d mono, %d overlap)\n", stats.Count, stats.Mono, stats.Overlap)
	fmt.Printf("  Response: mean %.1f, stddev %.1f\n", stats.ResponseMean, stats.ResponseStdDev)
	fmt.Printf("  Spread: x stddev %.1f, y stddev %.1f\n", stats.XStdDev, stats.YStdDev)
	fmt.Printf("  Per octave:")
	for level := 0; level < cfg.NLevels; level++ {
		fmt.Printf(" %d:%d", level, stats.PerOctave[level])
	}
	fmt.Println()

	if *verbose {
		fmt.Printf("\n%8s %10s %10s %7s %8s %9s\n", "Index", "X", "Y", "Octave", "Angle", "Response")
		for i, kp := range res.Keypoints {
			fmt.Printf("%8d %10.2f %10.2f %7d %8.2f %9.1f\n",
				i, kp.Pt.X, kp.Pt.Y, kp.Octave, kp.Angle, kp.Response)
		}
	}

	if *outPath != "" {
		overlay := gocv.NewMat()
		defer overlay.Close()
		gocv.CvtColor(gray, &overlay, gocv.ColorGrayToBGR)
		feature.RenderOverlay(&overlay, res, feature.DefaultRenderOptions())
		if ok := gocv.IMWrite(*outPath, overlay); !ok {
			fmt.Fprintf(os.Stderr, "Failed to write overlay to %s\n", *outPath)
			os.Exit(1)
		}
		fmt.Printf("\nWrote keypoint overlay to %s\n", *outPath)
	}
}
