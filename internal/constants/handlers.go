// Package constants provides shared constants used across the codebase.
package constants

// Handler limits
const (
	// MaxRequestBodySize is the maximum accepted JSON request body in bytes (64KB)
	MaxRequestBodySize = 64 << 10

	// MaxVerifyTimeoutSeconds caps the client-supplied verification timeout
	MaxVerifyTimeoutSeconds = 60
)
