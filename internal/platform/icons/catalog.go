package icons

import (
	"strings"
)

// Entry describes one icon in a generated catalog.
type Entry struct {
	ID         string
	Deprecated bool
}

// CatalogMarkdown renders entries as a markdown table, in the given order.
func CatalogMarkdown(entries []Entry) string {
	var builder strings.Builder
	builder.WriteString("# Icon Catalog\n\n")
	builder.WriteString("Generated by `go run ./internal/tools/icondocgen`.\n\n")
	builder.WriteString("| Icon ID | Component | Deprecated |\n")
	builder.WriteString("| --- | --- | --- |\n")
	for _, entry := range entries {
		builder.WriteString("| ")
		builder.WriteString(entry.ID)
		builder.WriteString(" | ")
		builder.WriteString(ComponentName(entry.ID))
		builder.WriteString(" | ")
		if entry.Deprecated {
			builder.WriteString("yes")
		}
		builder.WriteString(" |\n")
	}
	return builder.String()
}
