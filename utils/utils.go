package utils

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log"
	"math"
	"os"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/setanarut/inkpath"
)

// DefaultThreshold is the fallback when a channel is too uniform for
// clustering to propose anything better.
const DefaultThreshold = 128

// SuggestThreshold proposes a caller-convention ink threshold for one
// channel by 2-means clustering its ink values: one cluster gathers
// the inked tones, the other the paper tones, and the midpoint between
// the two centers becomes the cut.
func SuggestThreshold(p inkpath.InkPlane) int {
	if len(p.Pix) == 0 {
		return DefaultThreshold
	}

	// Subsample to keep kmeans tractable on large planes.
	maxSamples := 12000
	step := 1
	if len(p.Pix) > maxSamples {
		step = len(p.Pix)/maxSamples + 1
	}
	dataset := make(clusters.Observations, 0, min(len(p.Pix), maxSamples))
	for i := 0; i < len(p.Pix); i += step {
		dataset = append(dataset, clusters.Coordinates{float64(p.Pix[i]) / 255.0})
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, 2)
	if err != nil || len(cc) < 2 {
		log.Println("threshold warning: clustering failed, falling back to default")
		return DefaultThreshold
	}

	c0 := cc[0].Center[0]
	c1 := cc[1].Center[0]
	mid := (c0 + c1) / 2 * 255.0
	// Plane values are 0 = full ink; a pixel is ink below 255-t, so
	// the caller-convention threshold mirrors the midpoint.
	t := 255 - int(math.Round(mid))
	return max(0, min(255, t))
}

// SuggestThresholds proposes one threshold per channel in C, M, Y, K
// order.
func SuggestThresholds(img image.Image) [4]int {
	planes := inkpath.InkChannels(img)
	var out [4]int
	for ch := range planes {
		out[ch] = SuggestThreshold(planes[ch])
	}
	return out
}

// PaperColor picks the image's dominant color as a paper tone for
// previews.
func PaperColor(img image.Image) colorful.Color {
	c, _ := colorful.MakeColor(dominantcolor.Find(img))
	return c.Clamped()
}

// PlaneImage renders an ink plane as grayscale, 0 = full ink.
func PlaneImage(p inkpath.InkPlane) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, p.W, p.H))
	copy(img.Pix, p.Pix)
	return img
}

// MaskImage renders a bilevel mask with ink as black on white.
func MaskImage(m inkpath.Mask) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.W, m.H))
	for i, ink := range m.Ink {
		if ink {
			img.Pix[i] = 0
		} else {
			img.Pix[i] = 255
		}
	}
	return img
}

func ReadImage(path string) image.Image {
	file, err := os.Open(path)
	if err != nil {
		panic(err)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		panic(err)
	}
	return img
}

func SaveImage(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func SaveSVG(doc string, filename string) error {
	return os.WriteFile(filename, []byte(doc), 0o644)
}
