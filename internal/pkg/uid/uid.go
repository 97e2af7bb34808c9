// Package uid generates identifiers used for request correlation and message headers.
package uid

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}
