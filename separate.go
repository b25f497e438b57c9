package inkpath

import (
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Channel identifies one of the four ink separations.
type Channel int

const (
	Cyan Channel = iota
	Magenta
	Yellow
	Black
)

func (c Channel) String() string {
	switch c {
	case Cyan:
		return "cyan"
	case Magenta:
		return "magenta"
	case Yellow:
		return "yellow"
	default:
		return "black"
	}
}

// Channels lists the separations in plotting order.
var Channels = [4]Channel{Cyan, Magenta, Yellow, Black}

// displayColors are the additive screen colors used when compositing,
// deliberately not the subtractive print colors: multiply-blended
// additive layers approximate ink overprint on screen.
var displayColors = [4]colorful.Color{
	{R: 0, G: 1, B: 1},
	{R: 1, G: 0, B: 1},
	{R: 1, G: 1, B: 0},
	{R: 0, G: 0, B: 0},
}

// DisplayColor returns the channel's on-screen compositing color.
func (c Channel) DisplayColor() colorful.Color {
	return displayColors[c]
}

// InkPlane is one channel's continuous ink intensities on the
// conventional CMYK byte scale: 0 is full ink, 255 is no ink.
type InkPlane struct {
	W, H int
	Pix  []uint8 // len = W*H
}

func (p InkPlane) At(x, y int) uint8 {
	return p.Pix[gridOffset(p.W, x, y)]
}

// Mask is one channel's bilevel ink grid.
type Mask struct {
	W, H int
	Ink  []bool // len = W*H
}

func (m Mask) At(x, y int) bool {
	return m.Ink[gridOffset(m.W, x, y)]
}

// Count reports the number of ink pixels.
func (m Mask) Count() int {
	n := 0
	for _, v := range m.Ink {
		if v {
			n++
		}
	}
	return n
}

func gridOffset(w, x, y int) int {
	return y*w + x
}

// InkChannels converts an RGB image into four ink planes using gray
// component replacement: the shared gray portion of C, M and Y moves
// into K instead of being printed as mixed color ink. The input is
// not mutated.
func InkChannels(img image.Image) [4]InkPlane {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	var planes [4]InkPlane
	for i := range planes {
		planes[i] = InkPlane{W: w, H: h, Pix: make([]uint8, w*h)}
	}
	for y := range h {
		for x := range w {
			r16, g16, b16, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			r := float64(r16>>8) / 255.0
			g := float64(g16>>8) / 255.0
			b := float64(b16>>8) / 255.0

			c := 1.0 - r
			m := 1.0 - g
			yl := 1.0 - b
			k := min(c, m, yl)
			if k < 1.0 {
				inv := 1.0 / (1.0 - k)
				c = (c - k) * inv
				m = (m - k) * inv
				yl = (yl - k) * inv
			} else {
				// All three at full ink; the gray component is the
				// whole pixel and K carries it alone.
				c, m, yl = 0, 0, 0
			}

			off := gridOffset(w, x, y)
			planes[Cyan].Pix[off] = inkByte(c)
			planes[Magenta].Pix[off] = inkByte(m)
			planes[Yellow].Pix[off] = inkByte(yl)
			planes[Black].Pix[off] = inkByte(k)
		}
	}
	return planes
}

// inkByte maps an ink fraction in [0,1] onto the 0-is-full-ink byte scale.
func inkByte(v float64) uint8 {
	v = min(1.0, max(0.0, v))
	return uint8(math.Round((1.0 - v) * 255.0))
}

// Threshold reduces the plane to a bilevel mask. The caller-facing
// convention treats t in [0,255]; a pixel is ink when its plane value
// sits below 255-t. This is the only place the caller scale meets the
// internal ink scale.
func (p InkPlane) Threshold(t int) Mask {
	cut := 255 - t
	m := Mask{W: p.W, H: p.H, Ink: make([]bool, len(p.Pix))}
	for i, v := range p.Pix {
		m.Ink[i] = int(v) < cut
	}
	return m
}

// Separate splits an RGB image into four bilevel ink masks, one per
// channel, using the per-channel thresholds in C, M, Y, K order.
func Separate(img image.Image, thresholds [4]int) [4]Mask {
	planes := InkChannels(img)
	var masks [4]Mask
	for ch := range masks {
		masks[ch] = planes[ch].Threshold(thresholds[ch])
	}
	return masks
}
