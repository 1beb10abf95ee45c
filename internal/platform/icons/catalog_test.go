package icons

import (
	"strings"
	"testing"
)

func TestCatalogMarkdownListsEntriesInOrder(t *testing.T) {
	markdown := CatalogMarkdown([]Entry{
		{ID: "a-arrow-down"},
		{ID: "zap", Deprecated: true},
	})

	first := strings.Index(markdown, "| a-arrow-down | AArrowDownIcon |  |")
	second := strings.Index(markdown, "| zap | ZapIcon | yes |")
	if first < 0 || second < 0 {
		t.Fatalf("catalog missing rows:\n%s", markdown)
	}
	if first > second {
		t.Fatalf("catalog rows out of order:\n%s", markdown)
	}
}

func TestCatalogMarkdownEmpty(t *testing.T) {
	markdown := CatalogMarkdown(nil)
	if !strings.HasPrefix(markdown, "# Icon Catalog") {
		t.Fatalf("unexpected header:\n%s", markdown)
	}
	if strings.Count(markdown, "\n|") != 2 {
		t.Fatalf("expected only header rows:\n%s", markdown)
	}
}
