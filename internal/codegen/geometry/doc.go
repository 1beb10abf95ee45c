// Package geometry normalizes icon path data.
//
// A decoded Drawing holds one SubPath per drawable element, each a list of
// absolute segments in the drawing's own coordinate space. Normalize turns
// every sub-path into a PathRecord: a command string in native units plus an
// offset/extent pair, expressed as fractions of the drawing's nominal size,
// that places the sub-path inside a unit-square viewport.
package geometry
