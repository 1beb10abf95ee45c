// Package errors provides structured error handling for the icon pipeline.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Source tree errors
	CodeSourceUnavailable Code = "SOURCE_UNAVAILABLE"
	CodeMetadataInvalid   Code = "METADATA_INVALID"
	CodeParseError        Code = "PARSE_ERROR"

	// Output errors
	CodeTemplateError Code = "TEMPLATE_ERROR"
	CodeIOError       Code = "IO_ERROR"

	// Configuration errors
	CodeConfigInvalid Code = "CONFIG_INVALID"

	// Upstream sync errors
	CodeReleaseUnavailable Code = "RELEASE_UNAVAILABLE"
	CodeTagUnresolved      Code = "TAG_UNRESOLVED"
	CodeCheckoutFailed     Code = "CHECKOUT_FAILED"
)

// String returns the code as a plain string.
func (c Code) String() string {
	return string(c)
}
