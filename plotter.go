package inkpath

import (
	"fmt"
	"image"
	"log"
	"math/rand"
	"sync"

	rsvg "github.com/rustyoz/svg"
	xdraw "golang.org/x/image/draw"
)

type Options struct {
	// Per-channel sampling divisors in C, M, Y, K order. Every Nth ink
	// pixel survives sampling; higher values keep fewer points and
	// trace faster.
	Divisors [4]int
	// Per-channel ink thresholds in [0, 255], higher = more ink,
	// in C, M, Y, K order.
	Thresholds [4]int
	// Steps longer than GapLimit become pen-up moves instead of drawn
	// lines. A step of exactly GapLimit is still drawn.
	GapLimit float64
	// Mode selects continuous-stroke tracing or halftone dots.
	Mode RenderMode
	// DotRadius is the marker radius in pixels used by ModeDots.
	DotRadius float64
	// Inputs with a larger dimension than MaxDimension are scaled down
	// before separation, preserving aspect ratio. Zero disables scaling.
	MaxDimension int
	// Optional physical size of the combined document, in millimeters.
	// Both must be set to take effect; the viewBox keeps pixel units.
	PhysicalWidthMM  float64
	PhysicalHeightMM float64
	// Seed drives the per-channel samplers. A fixed seed reproduces
	// the same drawing for the same input and options.
	Seed int64
}

func DefaultOptions() Options {
	return Options{
		Divisors:     [4]int{50, 50, 50, 25},
		Thresholds:   [4]int{128, 128, 90, 128},
		GapLimit:     25,
		DotRadius:    1.5,
		MaxDimension: 10000,
	}
}

func (opt Options) validate() error {
	for i, d := range opt.Divisors {
		if d < 1 {
			return fmt.Errorf("inkpath: %s divisor must be >= 1, got %d", Channel(i), d)
		}
	}
	for i, t := range opt.Thresholds {
		if t < 0 || t > 255 {
			return fmt.Errorf("inkpath: %s threshold must be in [0, 255], got %d", Channel(i), t)
		}
	}
	if opt.GapLimit <= 0 {
		return fmt.Errorf("inkpath: gap limit must be positive, got %v", opt.GapLimit)
	}
	if opt.Mode == ModeDots && opt.DotRadius <= 0 {
		return fmt.Errorf("inkpath: dot radius must be positive, got %v", opt.DotRadius)
	}
	return nil
}

// Plotter turns a raster image into a four-layer plotter drawing.
type Plotter struct {
	InputImage image.Image
}

func NewPlotter(input image.Image) *Plotter {
	return &Plotter{InputImage: input}
}

// Result is the combined document plus the dimensions it was produced
// at. Width and Height are the processing dimensions, which differ
// from the original ones only when the input was scaled down.
type Result struct {
	SVG            string
	Width, Height  int
	OriginalWidth  int
	OriginalHeight int
	ViewBox        string
}

// Process runs the full pipeline: separate the image into four ink
// masks, then per channel sample, trace and render, and finally merge
// the four renderings into one layered document. Invalid options are
// rejected before any work starts. The four channels run concurrently;
// no state is shared across them beyond the read-only masks.
func (pl *Plotter) Process(opt Options) (*Result, error) {
	if err := opt.validate(); err != nil {
		return nil, err
	}

	bounds := pl.InputImage.Bounds()
	origW, origH := bounds.Dx(), bounds.Dy()

	img := scaleDown(pl.InputImage, opt.MaxDimension)
	w, h := img.Bounds().Dx(), img.Bounds().Dy()

	masks := Separate(img, opt.Thresholds)

	arts := make([]ChannelArt, len(Channels))
	var wg sync.WaitGroup
	for i := range Channels {
		wg.Add(1)
		go func(ch int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(opt.Seed + int64(ch)))
			points := SamplePoints(masks[ch], opt.Divisors[ch], rng)
			var doc string
			if opt.Mode == ModeDots {
				doc = DotsSVG(w, h, points, opt.DotRadius)
			} else {
				tour := BuildTour(points)
				doc = PathSVG(w, h, TracePath(tour, opt.GapLimit))
			}
			arts[ch] = ChannelArt{Channel: Channel(ch), Mode: opt.Mode, SVG: doc}
		}(i)
	}
	wg.Wait()

	combined := CombinePhysical(arts, w, h, opt.PhysicalWidthMM, opt.PhysicalHeightMM)

	res := &Result{
		SVG:            combined,
		Width:          w,
		Height:         h,
		OriginalWidth:  origW,
		OriginalHeight: origH,
	}
	parsed, err := rsvg.ParseSvg(combined, "combined", 1.0)
	if err != nil {
		log.Printf("inkpath warning: combined document readback failed: %v", err)
	} else {
		res.ViewBox = parsed.ViewBox
	}
	return res, nil
}

// scaleDown resizes the image so neither dimension exceeds maxDim,
// preserving aspect ratio. Inputs already small enough come back
// untouched.
func scaleDown(img image.Image, maxDim int) image.Image {
	if maxDim <= 0 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}
	var nw, nh int
	if w > h {
		nw = maxDim
		nh = max(h*maxDim/w, 1)
	} else {
		nh = maxDim
		nw = max(w*maxDim/h, 1)
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}
