package inkpath

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"log"
	"strconv"

	svg "github.com/ajstarks/svgo/float"
)

// channelLabels follow the numbered working-file convention used by
// plot layer tooling.
var channelLabels = [4]string{"1 C", "2 M", "3 Y", "4 K"}

// LayerID is the stable id given to a channel's layer group in the
// combined document.
func (c Channel) LayerID() string {
	return c.String() + "-layer"
}

const inkscapeNS = `xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape"`

// channelDoc is the subset of a channel document the compositor
// re-emits.
type channelDoc struct {
	Paths []struct {
		D           string `xml:"d,attr"`
		StrokeWidth string `xml:"stroke-width,attr"`
	} `xml:"path"`
	Circles []struct {
		CX string `xml:"cx,attr"`
		CY string `xml:"cy,attr"`
		R  string `xml:"r,attr"`
	} `xml:"circle"`
}

// Combine merges the rendered channel documents into one multi-layer
// SVG with the given pixel dimensions.
func Combine(arts []ChannelArt, width, height int) string {
	return CombinePhysical(arts, width, height, 0, 0)
}

// CombinePhysical is Combine with an optional physical output size in
// millimeters; pass zeros to keep pixel dimensions. Each channel
// becomes an Inkscape-style layer group with a stable id, a label and
// the channel's display color, blended with multiply so overlapping
// layers approximate ink overprint. A channel whose document does not
// parse is logged and skipped; it never aborts the other layers.
func CombinePhysical(arts []ChannelArt, width, height int, physWidthMM, physHeightMM float64) string {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	viewBox := fmt.Sprintf(`viewBox="0 0 %d %d"`, width, height)
	if physWidthMM > 0 && physHeightMM > 0 {
		canvas.Startunit(physWidthMM, physHeightMM, "mm", viewBox, inkscapeNS)
	} else {
		canvas.Start(float64(width), float64(height), viewBox, inkscapeNS)
	}

	for _, art := range arts {
		var doc channelDoc
		if err := xml.Unmarshal([]byte(art.SVG), &doc); err != nil {
			log.Printf("combine warning: skipping %s layer: %v", art.Channel, err)
			continue
		}

		stroke := art.Channel.DisplayColor().Hex()
		canvas.Group(
			fmt.Sprintf(`id="%s"`, art.Channel.LayerID()),
			`inkscape:groupmode="layer"`,
			fmt.Sprintf(`inkscape:label="%s"`, channelLabels[art.Channel]),
			`style="mix-blend-mode: multiply;"`,
		)
		switch art.Mode {
		case ModeDots:
			for _, c := range doc.Circles {
				cx := floatAttr(c.CX, 0)
				cy := floatAttr(c.CY, 0)
				r := floatAttr(c.R, 1)
				canvas.Circle(cx, cy, r, fmt.Sprintf(`fill="%s"`, stroke))
			}
		default:
			for _, p := range doc.Paths {
				sw := p.StrokeWidth
				if sw == "" {
					sw = "1"
				}
				canvas.Path(p.D,
					`fill="none"`,
					fmt.Sprintf(`stroke="%s"`, stroke),
					fmt.Sprintf(`stroke-width="%s"`, sw),
				)
			}
		}
		canvas.Gend()
	}

	canvas.End()
	return buf.String()
}

func floatAttr(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}
