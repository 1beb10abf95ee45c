package geometry

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/srwiley/rasterx"
	"golang.org/x/net/html/charset"
)

// hiddenElements never render on their own; nothing inside them is
// geometry.
var hiddenElements = map[string]bool{
	"defs":           true,
	"linearGradient": true,
	"radialGradient": true,
	"title":          true,
	"desc":           true,
	"style":          true,
}

type outlineFrame struct {
	transform rasterx.Matrix2D
	hidden    bool
}

// outline walks the document and returns one SubPath per drawable element,
// in document order, with every enclosing transform applied.
func outline(data []byte) ([]SubPath, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel

	stack := []outlineFrame{{transform: rasterx.Identity}}
	var subPaths []SubPath
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return subPaths, nil
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			parent := stack[len(stack)-1]
			frame := outlineFrame{
				transform: parent.transform,
				hidden:    parent.hidden || hiddenElements[t.Name.Local],
			}
			if frame.hidden {
				stack = append(stack, frame)
				continue
			}
			if value, ok := attr(t, "transform"); ok {
				m, err := ParseTransform(value)
				if err != nil {
					return nil, fmt.Errorf("%s transform: %w", t.Name.Local, err)
				}
				frame.transform = frame.transform.Mult(m)
			}
			stack = append(stack, frame)

			segments, err := shape(t)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", t.Name.Local, err)
			}
			if len(segments) > 0 {
				subPaths = append(subPaths, SubPath{Segments: resolve(segments, frame.transform)})
			}
		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		}
	}
}

// shape returns the outline of a basic shape or path element in its own
// user space. Elements without geometry, and shapes whose size disables
// rendering, return nothing.
func shape(el xml.StartElement) ([]Segment, error) {
	var lengths lengthReader
	var segments []Segment
	switch el.Name.Local {
	case "path":
		d, _ := attr(el, "d")
		return ParsePathData(d)
	case "rect":
		x, y := lengths.read(el, "x"), lengths.read(el, "y")
		w, h := lengths.read(el, "width"), lengths.read(el, "height")
		rx, rxSet := lengths.optional(el, "rx")
		ry, rySet := lengths.optional(el, "ry")
		if lengths.err != nil || w <= 0 || h <= 0 {
			break
		}
		switch {
		case rxSet && !rySet:
			ry = rx
		case rySet && !rxSet:
			rx = ry
		}
		segments = roundedRect(x, y, w, h, math.Min(math.Max(rx, 0), w/2), math.Min(math.Max(ry, 0), h/2))
	case "circle":
		cx, cy, r := lengths.read(el, "cx"), lengths.read(el, "cy"), lengths.read(el, "r")
		if lengths.err != nil || r <= 0 {
			break
		}
		segments = fullEllipse(ellipse{cx: cx, cy: cy, rx: r, ry: r})
	case "ellipse":
		cx, cy := lengths.read(el, "cx"), lengths.read(el, "cy")
		rx, ry := lengths.read(el, "rx"), lengths.read(el, "ry")
		if lengths.err != nil || rx <= 0 || ry <= 0 {
			break
		}
		segments = fullEllipse(ellipse{cx: cx, cy: cy, rx: rx, ry: ry})
	case "line":
		x1, y1 := lengths.read(el, "x1"), lengths.read(el, "y1")
		x2, y2 := lengths.read(el, "x2"), lengths.read(el, "y2")
		segments = []Segment{MoveTo(Point{X: x1, Y: y1}), LineTo(Point{X: x2, Y: y2})}
	case "polyline", "polygon":
		value, _ := attr(el, "points")
		points, err := parsePoints(value)
		if err != nil {
			return nil, err
		}
		for i, p := range points {
			if i == 0 {
				segments = append(segments, MoveTo(p))
				continue
			}
			segments = append(segments, LineTo(p))
		}
		if el.Name.Local == "polygon" && len(segments) > 0 {
			segments = append(segments, Close())
		}
	}
	if lengths.err != nil {
		return nil, lengths.err
	}
	return segments, nil
}

func roundedRect(x, y, w, h, rx, ry float64) []Segment {
	b := pathBuilder{}
	if rx == 0 || ry == 0 {
		b.moveTo(Point{X: x, Y: y})
		b.lineTo(Point{X: x + w, Y: y})
		b.lineTo(Point{X: x + w, Y: y + h})
		b.lineTo(Point{X: x, Y: y + h})
		b.close()
		return b.segments
	}
	corner := func(cx, cy, eta float64) {
		e := ellipse{cx: cx, cy: cy, rx: rx, ry: ry}
		b.ellipticArc(e, eta, math.Pi/2, e.point(eta+math.Pi/2))
	}
	b.moveTo(Point{X: x + rx, Y: y})
	b.lineTo(Point{X: x + w - rx, Y: y})
	corner(x+w-rx, y+ry, -math.Pi/2)
	b.lineTo(Point{X: x + w, Y: y + h - ry})
	corner(x+w-rx, y+h-ry, 0)
	b.lineTo(Point{X: x + rx, Y: y + h})
	corner(x+rx, y+h-ry, math.Pi/2)
	b.lineTo(Point{X: x, Y: y + ry})
	corner(x+rx, y+ry, math.Pi)
	b.close()
	return b.segments
}

func fullEllipse(e ellipse) []Segment {
	b := pathBuilder{}
	start := e.point(0)
	b.moveTo(start)
	b.ellipticArc(e, 0, 2*math.Pi, start)
	b.close()
	return b.segments
}

func parsePoints(value string) ([]Point, error) {
	sc := pathScanner{s: value}
	var coords []float64
	for !sc.done() {
		v, err := sc.number()
		if err != nil {
			return nil, err
		}
		coords = append(coords, v)
	}
	if len(coords)%2 != 0 {
		return nil, fmt.Errorf("points has an odd number of coordinates (%d)", len(coords))
	}
	points := make([]Point, 0, len(coords)/2)
	for i := 0; i < len(coords); i += 2 {
		points = append(points, Point{X: coords[i], Y: coords[i+1]})
	}
	return points, nil
}

// resolve maps segments through m and rounds every coordinate to nine
// decimal places, which drops the binary noise of relative coordinates
// ("12 + 5.66") and of rotations.
func resolve(segments []Segment, m rasterx.Matrix2D) []Segment {
	out := make([]Segment, len(segments))
	for i, seg := range segments {
		out[i] = seg
		for j := range seg.Op.arity() {
			x, y := m.Transform(seg.Points[j].X, seg.Points[j].Y)
			out[i].Points[j] = Point{X: snap(x), Y: snap(y)}
		}
	}
	return out
}

func snap(v float64) float64 {
	if math.Abs(v) >= 1e6 {
		return v
	}
	return normalizeZero(math.Round(v*1e9) / 1e9)
}

// lengthReader reads numeric attributes and keeps the first error.
type lengthReader struct {
	err error
}

func (r *lengthReader) read(el xml.StartElement, name string) float64 {
	v, _ := r.optional(el, name)
	return v
}

func (r *lengthReader) optional(el xml.StartElement, name string) (float64, bool) {
	value, ok := attr(el, name)
	if !ok || r.err != nil {
		return 0, false
	}
	v, err := parseLength(value)
	if err != nil {
		r.err = fmt.Errorf("attribute %s: %w", name, err)
		return 0, false
	}
	return v, true
}

// parseLength accepts plain numbers and px lengths. Other units need a
// viewport to resolve and are rejected.
func parseLength(value string) (float64, error) {
	value = strings.TrimSuffix(strings.TrimSpace(value), "px")
	return strconv.ParseFloat(value, 64)
}

func attr(el xml.StartElement, name string) (string, bool) {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}
