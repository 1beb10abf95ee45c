package geometry

import "math"

// Rect is an axis-aligned bounding box.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Empty reports whether no point has been added to r.
func (r Rect) Empty() bool {
	return r.Left > r.Right || r.Top > r.Bottom
}

func emptyRect() Rect {
	return Rect{
		Left:   math.Inf(1),
		Top:    math.Inf(1),
		Right:  math.Inf(-1),
		Bottom: math.Inf(-1),
	}
}

func (r *Rect) add(p Point) {
	r.Left = math.Min(r.Left, p.X)
	r.Top = math.Min(r.Top, p.Y)
	r.Right = math.Max(r.Right, p.X)
	r.Bottom = math.Max(r.Bottom, p.Y)
}

// Bounds returns the tight bounding box of segments. Curves contribute their
// extrema rather than their control points.
func Bounds(segments []Segment) Rect {
	box := emptyRect()
	var current, start Point
	for _, seg := range segments {
		switch seg.Op {
		case OpMoveTo:
			current, start = seg.Points[0], seg.Points[0]
			box.add(current)
		case OpLineTo:
			current = seg.Points[0]
			box.add(current)
		case OpQuadTo:
			c, end := seg.Points[0], seg.Points[1]
			box.add(end)
			for _, t := range quadExtrema(current.X, c.X, end.X) {
				box.add(quadAt(current, c, end, t))
			}
			for _, t := range quadExtrema(current.Y, c.Y, end.Y) {
				box.add(quadAt(current, c, end, t))
			}
			current = end
		case OpCubicTo:
			c1, c2, end := seg.Points[0], seg.Points[1], seg.Points[2]
			box.add(end)
			for _, t := range cubicExtrema(current.X, c1.X, c2.X, end.X) {
				box.add(cubicAt(current, c1, c2, end, t))
			}
			for _, t := range cubicExtrema(current.Y, c1.Y, c2.Y, end.Y) {
				box.add(cubicAt(current, c1, c2, end, t))
			}
			current = end
		case OpClose:
			current = start
		}
	}
	return box
}

// quadExtrema returns the parameter in (0, 1) where the derivative of a
// one-dimensional quadratic Bezier vanishes, if any.
func quadExtrema(p0, p1, p2 float64) []float64 {
	denom := p0 - 2*p1 + p2
	if denom == 0 {
		return nil
	}
	t := (p0 - p1) / denom
	if t > 0 && t < 1 {
		return []float64{t}
	}
	return nil
}

// cubicExtrema returns the parameters in (0, 1) where the derivative of a
// one-dimensional cubic Bezier vanishes.
func cubicExtrema(p0, p1, p2, p3 float64) []float64 {
	// B'(t)/3 = a t^2 + b t + c
	a := -p0 + 3*p1 - 3*p2 + p3
	b := 2 * (p0 - 2*p1 + p2)
	c := p1 - p0

	var roots []float64
	keep := func(t float64) {
		if t > 0 && t < 1 {
			roots = append(roots, t)
		}
	}

	const eps = 1e-12
	if math.Abs(a) < eps {
		if math.Abs(b) >= eps {
			keep(-c / b)
		}
		return roots
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	keep((-b + sq) / (2 * a))
	if disc > 0 {
		keep((-b - sq) / (2 * a))
	}
	return roots
}

func quadAt(p0, p1, p2 Point, t float64) Point {
	mt := 1 - t
	return Point{
		X: mt*mt*p0.X + 2*mt*t*p1.X + t*t*p2.X,
		Y: mt*mt*p0.Y + 2*mt*t*p1.Y + t*t*p2.Y,
	}
}

func cubicAt(p0, p1, p2, p3 Point, t float64) Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}
