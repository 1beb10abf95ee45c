package config

import (
	"fmt"
	"io"
	"os"

	apperrors "github.com/louisbranch/iconkit/internal/platform/errors"
)

// Exitf writes a formatted error message to stderr and exits with code 1.
// It provides a consistent fatal-exit pattern for CLI entry points.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// ExitErr reports err (and its remediation hint, if any) on stderr and exits
// with code 1.
func ExitErr(err error) {
	writeErr(os.Stderr, err)
	os.Exit(1)
}

func writeErr(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	if hint := apperrors.HintOf(err); hint != "" {
		fmt.Fprintf(w, "Hint: %s\n", hint)
	}
}
