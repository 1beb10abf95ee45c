package geometry

import (
	"bytes"
	"fmt"
	"io"

	"github.com/srwiley/oksvg"

	apperrors "github.com/louisbranch/iconkit/internal/platform/errors"
)

// Decode parses SVG markup into a Drawing.
//
// The document is first read with oksvg in strict mode, which rejects
// malformed XML and elements outside the supported subset and resolves the
// nominal size: the viewBox size, or the width/height attributes when there
// is no viewBox. Geometry is then taken in float64 from every drawable
// element (path, rect, circle, ellipse, line, polyline, polygon), one
// SubPath each in document order, with element and group transforms
// applied. Presentation attributes play no part in the result.
func Decode(r io.Reader) (Drawing, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Drawing{}, apperrors.Wrap(apperrors.CodeParseError, "read svg", err)
	}
	icon, err := oksvg.ReadReplacingCurrentColor(bytes.NewReader(data), "black", oksvg.StrictErrorMode)
	if err != nil {
		return Drawing{}, apperrors.Wrap(apperrors.CodeParseError, "decode svg", err)
	}
	if !(icon.ViewBox.W > 0) || !(icon.ViewBox.H > 0) {
		return Drawing{}, apperrors.New(apperrors.CodeParseError,
			fmt.Sprintf("decode svg: missing size (viewBox %gx%g)", icon.ViewBox.W, icon.ViewBox.H))
	}
	subPaths, err := outline(data)
	if err != nil {
		return Drawing{}, apperrors.Wrap(apperrors.CodeParseError, "decode svg geometry", err)
	}
	return Drawing{
		Width:    icon.ViewBox.W,
		Height:   icon.ViewBox.H,
		SubPaths: subPaths,
	}, nil
}

// Merge joins every sub-path of d into one, in document order. It is the
// equivalent of merging all paths of an icon before normalization.
func Merge(d Drawing) Drawing {
	if len(d.SubPaths) < 2 {
		return d
	}
	var segments []Segment
	for _, sub := range d.SubPaths {
		segments = append(segments, sub.Segments...)
	}
	d.SubPaths = []SubPath{{Segments: segments}}
	return d
}
