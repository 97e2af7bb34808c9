// Package config reads service settings from a YAML file with environment overrides.
package config

import (
	"io"
	"time"
)

// Config is the read-only view of the service settings.
//
// Missing keys yield the zero value of the requested type.
type Config interface {
	io.Closer

	GetBool(key string) bool
	GetInt(key string) int
	GetInt32(key string) int32
	GetFloat64(key string) float64
	GetString(key string) string

	// GetSecond reads an integer number of seconds.
	GetSecond(key string) time.Duration

	// GetArray reads a YAML list or a comma separated string.
	// Elements are trimmed and empty ones dropped.
	GetArray(key string) []string

	// GetMap reads a YAML mapping or a string of "key:value" pairs separated by commas.
	// Only the first colon of a pair separates key from value.
	GetMap(key string) map[string]string
}
