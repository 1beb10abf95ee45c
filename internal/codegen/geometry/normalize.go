package geometry

import (
	"fmt"
	"math"

	"github.com/louisbranch/iconkit/internal/codegen/diag"
	apperrors "github.com/louisbranch/iconkit/internal/platform/errors"
)

// PathRecord is the normalized form of one sub-path.
//
// Offsets and extents are fractions of the drawing's nominal size. An offset
// of 0 means the sub-path's bounding box is flush with the drawing origin; a
// positive offset means the geometry bleeds past the origin by that fraction.
// Extents are always 1 plus the absolute offset on the same axis.
type PathRecord struct {
	OffsetX      float64
	OffsetY      float64
	ExtentWidth  float64
	ExtentHeight float64
	Commands     string
}

// Normalize converts every sub-path of d into a PathRecord, in document
// order. Non-square drawings and drawings with several sub-paths are
// reported to report as warnings; neither stops normalization.
func Normalize(d Drawing, report diag.Scope) ([]PathRecord, error) {
	if !(d.Width > 0) || math.IsInf(d.Width, 0) {
		return nil, apperrors.New(apperrors.CodeParseError,
			fmt.Sprintf("drawing has no usable size (width: %g, height: %g)", d.Width, d.Height))
	}
	if d.Width != d.Height {
		report.Warn(diag.KindNonSquare, "SVG icon is not square (width: %g, height: %g)", d.Width, d.Height)
	}
	size := d.Width

	records := make([]PathRecord, 0, len(d.SubPaths))
	for _, sub := range d.SubPaths {
		box := Bounds(sub.Segments)
		if box.Empty() {
			continue
		}
		offsetX := normalizeZero(-box.Left / size)
		offsetY := normalizeZero(-box.Top / size)
		records = append(records, PathRecord{
			OffsetX:      offsetX,
			OffsetY:      offsetY,
			ExtentWidth:  1 + math.Abs(offsetX),
			ExtentHeight: 1 + math.Abs(offsetY),
			Commands:     FormatCommands(sub.Segments),
		})
	}

	if len(records) > 1 {
		report.Warn(diag.KindMultiPath, "icon has multiple paths (%d paths)", len(records))
	}
	return records, nil
}

func normalizeZero(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}
