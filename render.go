package inkpath

import (
	"bytes"
	"fmt"
	"strings"

	svg "github.com/ajstarks/svgo/float"
)

// Op is a drawing command kind.
type Op uint8

const (
	MoveTo Op = iota // pen-up jump
	LineTo           // drawn stroke
)

// Cmd is one drawing command.
type Cmd struct {
	Op   Op
	X, Y int
}

// Path is a flat command sequence. A non-empty Path always starts with
// MoveTo.
type Path []Cmd

// D renders the path as an SVG path data attribute, e.g. "M 10 20 L 30 40".
func (p Path) D() string {
	var b strings.Builder
	for i, c := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		letter := byte('L')
		if c.Op == MoveTo {
			letter = 'M'
		}
		fmt.Fprintf(&b, "%c %d %d", letter, c.X, c.Y)
	}
	return b.String()
}

// TracePath turns a tour into drawing commands. Steps longer than gap
// become pen-up moves, representing a visual gap the plotter should
// not draw through; a step of exactly gap is still drawn.
func TracePath(t Tour, gap float64) Path {
	if len(t.Points) == 0 {
		return nil
	}
	path := make(Path, 0, len(t.Points))
	path = append(path, Cmd{Op: MoveTo, X: t.Points[0].X, Y: t.Points[0].Y})
	for i := 1; i < len(t.Points); i++ {
		op := LineTo
		if t.Dist[i] > gap {
			op = MoveTo
		}
		path = append(path, Cmd{Op: op, X: t.Points[i].X, Y: t.Points[i].Y})
	}
	return path
}

// RenderMode selects how a channel's sampled points become geometry.
type RenderMode int

const (
	// ModeStroke traces a single continuous-stroke path.
	ModeStroke RenderMode = iota
	// ModeDots stipples the sampled points as halftone dots.
	ModeDots
)

// ChannelArt is one channel's rendered document, tagged with how it
// was produced so downstream consumers never probe the content.
type ChannelArt struct {
	Channel Channel
	Mode    RenderMode
	SVG     string
}

// PathSVG wraps a traced path in a standalone SVG document of the
// given pixel size. An empty path yields an empty document of the
// correct size.
func PathSVG(width, height int, p Path) string {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(float64(width), float64(height))
	if len(p) > 0 {
		canvas.Path(p.D(), `fill="none"`, `stroke="black"`)
	}
	canvas.End()
	return buf.String()
}

// DotsSVG stipples the points as filled circles in a standalone SVG
// document of the given pixel size.
func DotsSVG(width, height int, points []Point, radius float64) string {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(float64(width), float64(height))
	for _, p := range points {
		canvas.Circle(float64(p.X), float64(p.Y), radius, `fill="black"`)
	}
	canvas.End()
	return buf.String()
}
