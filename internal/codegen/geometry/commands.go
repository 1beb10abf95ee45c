package geometry

import (
	"strconv"
	"strings"
)

// FormatCommands encodes segments as a space-separated command string with
// absolute coordinates: "M x y", "L x y", "Q cx cy x y",
// "C c1x c1y c2x c2y x y" and "Z". There is no trailing space.
func FormatCommands(segments []Segment) string {
	var builder strings.Builder
	for _, seg := range segments {
		if builder.Len() > 0 {
			builder.WriteByte(' ')
		}
		builder.WriteString(seg.Op.letter())
		for _, p := range seg.Points[:seg.Op.arity()] {
			builder.WriteByte(' ')
			builder.WriteString(FormatNumber(p.X))
			builder.WriteByte(' ')
			builder.WriteString(FormatNumber(p.Y))
		}
	}
	return builder.String()
}

// FormatNumber renders v in its shortest round-trip decimal form, without an
// exponent and never as "-0".
func FormatNumber(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
