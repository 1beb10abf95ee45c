package geometry

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/srwiley/rasterx"
)

var (
	errMissingMoveTo = errors.New("path data must start with a moveto")
	errExpectNumber  = errors.New("expected number")
	errExpectFlag    = errors.New("expected arc flag 0 or 1")
)

// ParsePathData converts SVG path data into absolute segments. Relative
// commands, shorthand curves and horizontal/vertical lines are resolved;
// elliptical arcs become cubic curves.
func ParsePathData(d string) ([]Segment, error) {
	sc := pathScanner{s: d}
	var b pathBuilder
	for !sc.done() {
		cmd, ok := sc.command()
		if !ok {
			return nil, fmt.Errorf("offset %d: expected command, found %q", sc.pos, sc.s[sc.pos])
		}
		if len(b.segments) == 0 && cmd != 'M' && cmd != 'm' {
			return nil, errMissingMoveTo
		}
		if cmd == 'Z' || cmd == 'z' {
			b.close()
			continue
		}
		n := argCount(cmd)
		if n == 0 {
			return nil, fmt.Errorf("offset %d: unknown command %q", sc.pos-1, cmd)
		}
		for first := true; first || sc.startsNumber(); first = false {
			args, err := sc.args(cmd, n)
			if err != nil {
				return nil, fmt.Errorf("command %q: %w", cmd, err)
			}
			b.apply(cmd, args, first)
		}
	}
	return b.segments, nil
}

func argCount(cmd byte) int {
	switch cmd | 0x20 {
	case 'm', 'l', 't':
		return 2
	case 'h', 'v':
		return 1
	case 's', 'q':
		return 4
	case 'c':
		return 6
	case 'a':
		return 7
	default:
		return 0
	}
}

type pathScanner struct {
	s   string
	pos int
}

func (sc *pathScanner) skipSeparators() {
	for sc.pos < len(sc.s) {
		switch sc.s[sc.pos] {
		case ' ', '\t', '\n', '\r', '\f', ',':
			sc.pos++
		default:
			return
		}
	}
}

func (sc *pathScanner) done() bool {
	sc.skipSeparators()
	return sc.pos >= len(sc.s)
}

func (sc *pathScanner) command() (byte, bool) {
	sc.skipSeparators()
	if sc.pos >= len(sc.s) {
		return 0, false
	}
	c := sc.s[sc.pos]
	if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') || c == 'e' || c == 'E' {
		return 0, false
	}
	sc.pos++
	return c, true
}

func (sc *pathScanner) startsNumber() bool {
	sc.skipSeparators()
	if sc.pos >= len(sc.s) {
		return false
	}
	c := sc.s[sc.pos]
	return c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9')
}

func (sc *pathScanner) args(cmd byte, n int) ([]float64, error) {
	args := make([]float64, n)
	for i := range args {
		var err error
		if cmd|0x20 == 'a' && (i == 3 || i == 4) {
			args[i], err = sc.flag()
		} else {
			args[i], err = sc.number()
		}
		if err != nil {
			return nil, err
		}
	}
	return args, nil
}

// number reads one SVG number: sign, digits with at most one dot, and an
// optional exponent. "1.5.5" reads as 1.5 followed by .5.
func (sc *pathScanner) number() (float64, error) {
	sc.skipSeparators()
	start := sc.pos
	if sc.pos < len(sc.s) && (sc.s[sc.pos] == '-' || sc.s[sc.pos] == '+') {
		sc.pos++
	}
	digits := sc.digits()
	if sc.pos < len(sc.s) && sc.s[sc.pos] == '.' {
		sc.pos++
		digits += sc.digits()
	}
	if digits == 0 {
		sc.pos = start
		return 0, fmt.Errorf("offset %d: %w", start, errExpectNumber)
	}
	if sc.pos < len(sc.s) && (sc.s[sc.pos] == 'e' || sc.s[sc.pos] == 'E') {
		mark := sc.pos
		sc.pos++
		if sc.pos < len(sc.s) && (sc.s[sc.pos] == '-' || sc.s[sc.pos] == '+') {
			sc.pos++
		}
		if sc.digits() == 0 {
			sc.pos = mark
		}
	}
	v, err := strconv.ParseFloat(sc.s[start:sc.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("offset %d: %w", start, err)
	}
	return v, nil
}

func (sc *pathScanner) digits() int {
	n := 0
	for sc.pos < len(sc.s) && sc.s[sc.pos] >= '0' && sc.s[sc.pos] <= '9' {
		sc.pos++
		n++
	}
	return n
}

// Arc flags are a single character and may be packed against the next
// number ("a1 1 0 00.5.5").
func (sc *pathScanner) flag() (float64, error) {
	sc.skipSeparators()
	if sc.pos < len(sc.s) {
		switch sc.s[sc.pos] {
		case '0':
			sc.pos++
			return 0, nil
		case '1':
			sc.pos++
			return 1, nil
		}
	}
	return 0, fmt.Errorf("offset %d: %w", sc.pos, errExpectFlag)
}

// pathBuilder tracks the pen while resolving path commands.
type pathBuilder struct {
	segments []Segment
	current  Point
	start    Point
	// control is the last curve control point; prev is the upper-case
	// command that produced it.
	control Point
	prev    byte
}

func (b *pathBuilder) apply(cmd byte, a []float64, first bool) {
	var base Point
	if cmd >= 'a' {
		base = b.current
	}
	at := func(i int) Point { return Point{X: base.X + a[i], Y: base.Y + a[i+1]} }

	op := cmd &^ 0x20
	switch op {
	case 'M':
		if first {
			b.moveTo(at(0))
			return
		}
		b.lineTo(at(0))
		op = 'L'
	case 'L':
		b.lineTo(at(0))
	case 'H':
		b.lineTo(Point{X: base.X + a[0], Y: b.current.Y})
	case 'V':
		b.lineTo(Point{X: b.current.X, Y: base.Y + a[0]})
	case 'C':
		b.cubicTo(at(0), at(2), at(4))
	case 'S':
		b.cubicTo(b.reflected('C', 'S'), at(0), at(2))
	case 'Q':
		b.quadTo(at(0), at(2))
	case 'T':
		b.quadTo(b.reflected('Q', 'T'), at(0))
	case 'A':
		b.arcTo(a[0], a[1], a[2], a[3] != 0, a[4] != 0, at(5))
	}
	b.prev = op
}

// reflected mirrors the previous control point through the pen when the
// previous command was one of kinds, and is the pen itself otherwise.
func (b *pathBuilder) reflected(kinds ...byte) Point {
	for _, k := range kinds {
		if b.prev == k {
			return Point{X: 2*b.current.X - b.control.X, Y: 2*b.current.Y - b.control.Y}
		}
	}
	return b.current
}

func (b *pathBuilder) moveTo(p Point) {
	b.segments = append(b.segments, MoveTo(p))
	b.current, b.start = p, p
	b.prev = 'M'
}

func (b *pathBuilder) lineTo(p Point) {
	b.segments = append(b.segments, LineTo(p))
	b.current = p
}

func (b *pathBuilder) quadTo(c, p Point) {
	b.segments = append(b.segments, QuadTo(c, p))
	b.control, b.current = c, p
}

func (b *pathBuilder) cubicTo(c1, c2, p Point) {
	b.segments = append(b.segments, CubicTo(c1, c2, p))
	b.control, b.current = c2, p
}

func (b *pathBuilder) close() {
	b.segments = append(b.segments, Close())
	b.current = b.start
	b.prev = 'Z'
}

// arcTo appends an SVG elliptical arc from the pen to p, following the
// endpoint parameterization rules: zero radii draw a line, a zero-length arc
// draws nothing, and radii too small to span the chord are scaled up.
func (b *pathBuilder) arcTo(rx, ry, rotation float64, large, sweep bool, p Point) {
	from := b.current
	if from == p {
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		b.lineTo(p)
		return
	}
	rot := rotation * math.Pi / 180
	cx, cy := rasterx.FindEllipseCenter(&rx, &ry, rot, from.X, from.Y, p.X, p.Y, !sweep, !large)

	startAngle := math.Atan2(from.Y-cy, from.X-cx) - rot
	endAngle := math.Atan2(p.Y-cy, p.X-cx) - rot
	big := math.Abs(endAngle-startAngle) > math.Pi

	etaStart := math.Atan2(math.Sin(startAngle)/ry, math.Cos(startAngle)/rx)
	etaEnd := math.Atan2(math.Sin(endAngle)/ry, math.Cos(endAngle)/rx)
	delta := etaEnd - etaStart
	if big != large {
		if delta < 0 {
			delta += 2 * math.Pi
		} else {
			delta -= 2 * math.Pi
		}
	}
	if delta < 0 && sweep {
		delta += 2 * math.Pi
	} else if delta >= 0 && !sweep {
		delta -= 2 * math.Pi
	}
	b.ellipticArc(ellipse{cx: cx, cy: cy, rx: rx, ry: ry, rot: rot}, etaStart, delta, p)
}

// ellipticArc approximates the arc of e from parameter eta over delta with
// at most quarter-turn cubic pieces (L. Maisonobe, "Drawing an elliptical
// arc using polylines, quadratic or cubic Bezier curves"). The last piece
// ends exactly on end.
func (b *pathBuilder) ellipticArc(e ellipse, eta, delta float64, end Point) {
	pieces := int(math.Ceil(math.Abs(delta)/(math.Pi/2) - 1e-9))
	if pieces < 1 {
		pieces = 1
	}
	step := delta / float64(pieces)
	t := math.Tan(step / 2)
	alpha := math.Sin(step) * (math.Sqrt(4+3*t*t) - 1) / 3

	from := b.current
	d0 := e.tangent(eta)
	for i := 1; i <= pieces; i++ {
		next := eta + step*float64(i)
		to := end
		if i < pieces {
			to = e.point(next)
		}
		d1 := e.tangent(next)
		b.cubicTo(
			Point{X: from.X + alpha*d0.X, Y: from.Y + alpha*d0.Y},
			Point{X: to.X - alpha*d1.X, Y: to.Y - alpha*d1.Y},
			to,
		)
		from, d0 = to, d1
	}
}

type ellipse struct {
	cx, cy, rx, ry, rot float64
}

func (e ellipse) point(eta float64) Point {
	sin, cos := math.Sincos(e.rot)
	a, b := e.rx*math.Cos(eta), e.ry*math.Sin(eta)
	return Point{X: e.cx + a*cos - b*sin, Y: e.cy + a*sin + b*cos}
}

func (e ellipse) tangent(eta float64) Point {
	sin, cos := math.Sincos(e.rot)
	a, b := e.rx*math.Sin(eta), e.ry*math.Cos(eta)
	return Point{X: -a*cos - b*sin, Y: -a*sin + b*cos}
}
