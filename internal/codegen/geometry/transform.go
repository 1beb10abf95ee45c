package geometry

import (
	"fmt"
	"math"
	"strings"

	"github.com/srwiley/rasterx"
)

// ParseTransform parses an SVG transform list such as
// "translate(5 5) rotate(90 12 12)". The functions compose left to right,
// so the rightmost one applies to the geometry first.
func ParseTransform(value string) (rasterx.Matrix2D, error) {
	m := rasterx.Identity
	rest := strings.TrimSpace(value)
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		end := strings.IndexByte(rest, ')')
		if open < 0 || end < open {
			return m, fmt.Errorf("malformed transform %q", value)
		}
		name := strings.TrimSpace(rest[:open])
		args, err := transformArgs(rest[open+1 : end])
		if err != nil {
			return m, fmt.Errorf("%s: %w", name, err)
		}
		step, err := transformStep(name, args)
		if err != nil {
			return m, err
		}
		m = m.Mult(step)
		rest = strings.TrimLeft(rest[end+1:], " \t\r\n,")
	}
	return m, nil
}

func transformArgs(s string) ([]float64, error) {
	sc := pathScanner{s: s}
	var args []float64
	for !sc.done() {
		v, err := sc.number()
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

func transformStep(name string, a []float64) (rasterx.Matrix2D, error) {
	id := rasterx.Identity
	bad := func() (rasterx.Matrix2D, error) {
		return id, fmt.Errorf("%s: unexpected argument count %d", name, len(a))
	}
	switch name {
	case "matrix":
		if len(a) != 6 {
			return bad()
		}
		return rasterx.Matrix2D{A: a[0], B: a[1], C: a[2], D: a[3], E: a[4], F: a[5]}, nil
	case "translate":
		switch len(a) {
		case 1:
			return id.Translate(a[0], 0), nil
		case 2:
			return id.Translate(a[0], a[1]), nil
		}
		return bad()
	case "scale":
		switch len(a) {
		case 1:
			return id.Scale(a[0], a[0]), nil
		case 2:
			return id.Scale(a[0], a[1]), nil
		}
		return bad()
	case "rotate":
		switch len(a) {
		case 1:
			return id.Rotate(radians(a[0])), nil
		case 3:
			return id.Translate(a[1], a[2]).Rotate(radians(a[0])).Translate(-a[1], -a[2]), nil
		}
		return bad()
	case "skewX":
		if len(a) != 1 {
			return bad()
		}
		return id.SkewX(radians(a[0])), nil
	case "skewY":
		if len(a) != 1 {
			return bad()
		}
		return id.SkewY(radians(a[0])), nil
	default:
		return id, fmt.Errorf("unknown transform %q", name)
	}
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
