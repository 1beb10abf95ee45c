package geometry

// Op is a path drawing operation.
type Op uint8

const (
	OpMoveTo Op = iota
	OpLineTo
	OpQuadTo
	OpCubicTo
	OpClose
)

// Point is a coordinate in drawing space.
type Point struct {
	X, Y float64
}

// Segment is one absolute drawing command. Only the first Op.arity() points
// are meaningful: the end point is always the last of them.
type Segment struct {
	Op     Op
	Points [3]Point
}

func (op Op) arity() int {
	switch op {
	case OpMoveTo, OpLineTo:
		return 1
	case OpQuadTo:
		return 2
	case OpCubicTo:
		return 3
	default:
		return 0
	}
}

func (op Op) letter() string {
	switch op {
	case OpMoveTo:
		return "M"
	case OpLineTo:
		return "L"
	case OpQuadTo:
		return "Q"
	case OpCubicTo:
		return "C"
	default:
		return "Z"
	}
}

// MoveTo starts a new contour at p.
func MoveTo(p Point) Segment { return Segment{Op: OpMoveTo, Points: [3]Point{p}} }

// LineTo draws a straight line to p.
func LineTo(p Point) Segment { return Segment{Op: OpLineTo, Points: [3]Point{p}} }

// QuadTo draws a quadratic curve with control c ending at p.
func QuadTo(c, p Point) Segment { return Segment{Op: OpQuadTo, Points: [3]Point{c, p}} }

// CubicTo draws a cubic curve with controls c1, c2 ending at p.
func CubicTo(c1, c2, p Point) Segment { return Segment{Op: OpCubicTo, Points: [3]Point{c1, c2, p}} }

// Close closes the current contour.
func Close() Segment { return Segment{Op: OpClose} }

// SubPath is one top-level drawable element of a drawing.
type SubPath struct {
	Segments []Segment
}

// Drawing is a decoded icon: its nominal size and its sub-paths in document
// order.
type Drawing struct {
	Width, Height float64
	SubPaths      []SubPath
}
