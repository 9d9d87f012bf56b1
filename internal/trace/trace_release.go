//go:build !dev

// Package trace records runtime traces in development builds.
// Release builds compile it to no-ops.
package trace

import "context"

// Init does nothing in release builds
func Init() func() {
	return func() {}
}

// Region does nothing in release builds
func Region(_ context.Context, _ string) func() {
	return func() {}
}

// Log does nothing in release builds
func Log(_ context.Context, _, _ string) {}

// Enabled is always false in release builds
func Enabled() bool {
	return false
}
