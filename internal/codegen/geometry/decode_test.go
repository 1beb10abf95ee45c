package geometry

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/louisbranch/iconkit/internal/codegen/diag"
	apperrors "github.com/louisbranch/iconkit/internal/platform/errors"
)

const lucideX = `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" class="lucide lucide-x">
  <path d="M18 6L6 18" />
  <path d="M6 6L18 18" />
</svg>`

func TestDecodePaths(t *testing.T) {
	d, err := Decode(strings.NewReader(lucideX))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if d.Width != 24 || d.Height != 24 {
		t.Fatalf("size = %vx%v, want 24x24", d.Width, d.Height)
	}
	if len(d.SubPaths) != 2 {
		t.Fatalf("sub-paths = %d, want 2", len(d.SubPaths))
	}
	if got := FormatCommands(d.SubPaths[0].Segments); got != "M 18 6 L 6 18" {
		t.Fatalf("first path = %q", got)
	}
	if got := FormatCommands(d.SubPaths[1].Segments); got != "M 6 6 L 18 18" {
		t.Fatalf("second path = %q", got)
	}
}

func TestDecodeClosedPath(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path d="M0 0L10 10Z"/></svg>`
	d, err := Decode(strings.NewReader(svg))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(d.SubPaths) != 1 {
		t.Fatalf("sub-paths = %d, want 1", len(d.SubPaths))
	}
	if got := FormatCommands(d.SubPaths[0].Segments); got != "M 0 0 L 10 10 Z" {
		t.Fatalf("commands = %q", got)
	}
}

func TestDecodeShapes(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" stroke="currentColor">
  <rect x="3" y="4" width="18" height="16" />
  <circle cx="12" cy="12" r="10" />
</svg>`
	d, err := Decode(strings.NewReader(svg))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(d.SubPaths) != 2 {
		t.Fatalf("sub-paths = %d, want 2", len(d.SubPaths))
	}

	rect := Bounds(d.SubPaths[0].Segments)
	if rect.Left != 3 || rect.Top != 4 || rect.Right != 21 || rect.Bottom != 20 {
		t.Fatalf("rect bounds = %+v", rect)
	}

	circle := Bounds(d.SubPaths[1].Segments)
	const tol = 0.05
	if math.Abs(circle.Left-2) > tol || math.Abs(circle.Right-22) > tol ||
		math.Abs(circle.Top-2) > tol || math.Abs(circle.Bottom-22) > tol {
		t.Fatalf("circle bounds = %+v, want about 2..22", circle)
	}
}

func TestDecodeThenNormalize(t *testing.T) {
	var diags diag.Collector
	d, err := Decode(strings.NewReader(lucideX))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	records, err := Normalize(d, diags.For("x"))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if !approx(records[0].OffsetX, -0.25) || !approx(records[0].ExtentWidth, 1.25) {
		t.Fatalf("unexpected first record %+v", records[0])
	}
	if diags.Len() != 1 {
		t.Fatalf("diagnostics = %v, want one multi-path warning", diags.Diagnostics())
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "not svg", input: "hello world"},
		{name: "unsupported element", input: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><foreignObject/></svg>`},
		{name: "truncated", input: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path d="M0 0L1 1"`},
		{name: "bad path data", input: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path d="M0 0L1"/></svg>`},
		{name: "path without moveto", input: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path d="L1 1"/></svg>`},
		{name: "bad transform", input: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path d="M0 0L1 1" transform="spin(4)"/></svg>`},
		{name: "odd points", input: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><polyline points="1 2 3"/></svg>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			if apperrors.CodeOf(err) != apperrors.CodeParseError {
				t.Fatalf("code = %q, want %q (err %v)", apperrors.CodeOf(err), apperrors.CodeParseError, err)
			}
		})
	}
}

func decodeCommands(t *testing.T, svg string) []string {
	t.Helper()
	d, err := Decode(strings.NewReader(svg))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	out := make([]string, len(d.SubPaths))
	for i, sub := range d.SubPaths {
		out[i] = FormatCommands(sub.Segments)
	}
	return out
}

func TestDecodeAppliesTransforms(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "element translate",
			body: `<path d="M0 0L10 0" transform="translate(5 5)"/>`,
			want: []string{"M 5 5 L 15 5"},
		},
		{
			name: "group rotate about a point",
			body: `<g transform="rotate(90 12 12)"><path d="M0 0L10 0"/></g>`,
			want: []string{"M 24 0 L 24 10"},
		},
		{
			name: "nested groups compose outside in",
			body: `<g transform="translate(10 0)"><g transform="scale(2)"><path d="M1 1L2 2"/></g></g>`,
			want: []string{"M 12 2 L 14 4"},
		},
		{
			name: "transform list applies right to left",
			body: `<path d="M1 0L2 0" transform="translate(3 0) scale(2)"/>`,
			want: []string{"M 5 0 L 7 0"},
		},
		{
			name: "group transform ends with the group",
			body: `<g transform="translate(1 1)"><line x1="0" y1="0" x2="1" y2="0"/></g><line x1="0" y1="0" x2="1" y2="0"/>`,
			want: []string{"M 1 1 L 2 1", "M 0 0 L 1 0"},
		},
		{
			name: "matrix on a shape",
			body: `<rect width="2" height="1" transform="matrix(1 0 0 1 3 4)"/>`,
			want: []string{"M 3 4 L 5 4 L 5 5 L 3 5 Z"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">` + tt.body + `</svg>`
			got := decodeCommands(t, svg)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("commands mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeKeepsNativePrecision(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path d="M12 2.69l5.66 5.66a8 8 0 1 1-11.31 0z"/></svg>`
	got := decodeCommands(t, svg)
	if len(got) != 1 {
		t.Fatalf("sub-paths = %d, want 1", len(got))
	}
	if !strings.HasPrefix(got[0], "M 12 2.69 L 17.66 8.35 C ") {
		t.Fatalf("commands = %q, want native coordinates", got[0])
	}
	if !strings.HasSuffix(got[0], " 6.35 8.35 Z") {
		t.Fatalf("commands = %q, want the arc to end on 6.35 8.35", got[0])
	}
}

func TestDecodeSkipsDefinitions(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
  <title>demo</title>
  <defs><path id="hidden" d="M0 0L1 1"/></defs>
  <path d="M2 2L3 3"/>
</svg>`
	got := decodeCommands(t, svg)
	if diff := cmp.Diff([]string{"M 2 2 L 3 3"}, got); diff != "" {
		t.Fatalf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRoundedRect(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><rect x="2" y="2" width="20" height="20" rx="2"/></svg>`
	d, err := Decode(strings.NewReader(svg))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(d.SubPaths) != 1 {
		t.Fatalf("sub-paths = %d, want 1", len(d.SubPaths))
	}
	segments := d.SubPaths[0].Segments
	if got := FormatCommands(segments[:2]); got != "M 4 2 L 20 2" {
		t.Fatalf("first edge = %q", got)
	}
	box := Bounds(segments)
	if !approx(box.Left, 2) || !approx(box.Top, 2) || !approx(box.Right, 22) || !approx(box.Bottom, 22) {
		t.Fatalf("bounds = %+v, want 2..22", box)
	}
}

func TestDecodePolygon(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><polygon points="1,2 3,4 5,2"/><polyline points="0 0 1 1"/></svg>`
	got := decodeCommands(t, svg)
	want := []string{"M 1 2 L 3 4 L 5 2 Z", "M 0 0 L 1 1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestMerge(t *testing.T) {
	d, err := Decode(strings.NewReader(lucideX))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	merged := Merge(d)
	if len(merged.SubPaths) != 1 {
		t.Fatalf("sub-paths = %d, want 1", len(merged.SubPaths))
	}
	if got := FormatCommands(merged.SubPaths[0].Segments); got != "M 18 6 L 6 18 M 6 6 L 18 18" {
		t.Fatalf("merged commands = %q", got)
	}
	if len(d.SubPaths) != 2 {
		t.Fatal("Merge modified its input")
	}

	var diags diag.Collector
	records, err := Normalize(merged, diags.For("x"))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(records) != 1 || !approx(records[0].OffsetX, -0.25) || diags.Len() != 0 {
		t.Fatalf("records = %+v, diagnostics = %v", records, diags.Diagnostics())
	}
}
