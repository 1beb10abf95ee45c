package icons

import "testing"

func TestPascalCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "a-arrow-down", want: "AArrowDown"},
		{in: "arrow_left_right", want: "ArrowLeftRight"},
		{in: "  ", want: ""},
		{in: "", want: ""},
		{in: "x", want: "X"},
		{in: "--circle--dot--", want: "CircleDot"},
		{in: "mixed_case-sep arator", want: "MixedCaseSepArator"},
		{in: "badge-2x", want: "Badge2x"},
		{in: "keep-iNNER", want: "KeepINNER"},
		{in: "élan", want: "Élan"},
		{in: "ßig", want: "SSig"},
	}

	for _, tt := range tests {
		if got := PascalCase(tt.in); got != tt.want {
			t.Errorf("PascalCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestComponentName(t *testing.T) {
	if got := ComponentName("a-arrow-down"); got != "AArrowDownIcon" {
		t.Fatalf("ComponentName = %q", got)
	}
	if got := ComponentName("--"); got != "Icon" {
		t.Fatalf("ComponentName(--) = %q", got)
	}
}
