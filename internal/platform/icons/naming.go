package icons

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ComponentSuffix is appended to every generated component name.
const ComponentSuffix = "Icon"

// PascalCase converts an identifier like "a-arrow-down" or
// "arrow_left_right" into "AArrowDown" / "ArrowLeftRight".
//
// Segments are split on '-', '_' and ' '; empty segments are dropped. Only
// the first rune of each segment is upper-cased (with full Unicode case
// mapping, so it may expand to several runes); the rest is kept as is.
func PascalCase(id string) string {
	segments := strings.FieldsFunc(id, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	if len(segments) == 0 {
		return ""
	}

	upper := cases.Upper(language.Und)
	var builder strings.Builder
	builder.Grow(len(id))
	for _, segment := range segments {
		first, size := utf8.DecodeRuneInString(segment)
		builder.WriteString(upper.String(string(first)))
		builder.WriteString(segment[size:])
	}
	return builder.String()
}

// ComponentName returns the generated component name for an identifier.
func ComponentName(id string) string {
	return PascalCase(id) + ComponentSuffix
}
