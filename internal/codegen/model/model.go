// Package model assembles per-icon records from discovered icon sources.
//
// The Builder is the only place in the pipeline that branches on the output
// mode: inline icons carry normalized geometry, external icons carry a
// locator for a copy of their source drawing.
package model

import (
	"fmt"
	"io"
	"strings"

	"github.com/louisbranch/iconkit/internal/codegen/geometry"
	apperrors "github.com/louisbranch/iconkit/internal/platform/errors"
)

// OutputMode selects how icon geometry reaches the generated artifact.
type OutputMode int

const (
	// ModeInline embeds normalized path records in the artifact.
	ModeInline OutputMode = iota
	// ModeExternalResource copies each source drawing next to the artifact
	// and references it by relative path.
	ModeExternalResource
)

// String returns the configuration spelling of m.
func (m OutputMode) String() string {
	switch m {
	case ModeInline:
		return "inline"
	case ModeExternalResource:
		return "external"
	default:
		return fmt.Sprintf("OutputMode(%d)", int(m))
	}
}

// ParseOutputMode parses "inline" or "external".
func ParseOutputMode(value string) (OutputMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "inline":
		return ModeInline, nil
	case "external":
		return ModeExternalResource, nil
	default:
		return ModeInline, apperrors.WithMetadata(apperrors.CodeConfigInvalid,
			fmt.Sprintf("unknown output mode %q (want inline or external)", value),
			map[string]string{"mode": value})
	}
}

// Icon is the generated form of one icon. Exactly one of Paths and Resource
// is set, depending on the run's output mode.
type Icon struct {
	// Name is the component name, e.g. "AArrowDownIcon".
	Name string
	// ID is the source identifier, e.g. "a-arrow-down".
	ID         string
	Deprecated bool
	Paths      []geometry.PathRecord
	// Resource is a slash-separated path relative to the artifact directory.
	Resource string
}

// External reports whether the icon references a copied source drawing.
func (i Icon) External() bool {
	return i.Resource != ""
}

// DecodeFunc decodes one source drawing.
type DecodeFunc func(io.Reader) (geometry.Drawing, error)
