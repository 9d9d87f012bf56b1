//go:build dev

// Package trace records runtime traces in development builds.
//
// Usage:
//
//	go build -tags dev ./cmd/devcmd
//	DEVCMD_TRACE=trace.out devcmd run test1 -name1 val11
//	go tool trace trace.out
package trace

import (
	"context"
	"fmt"
	"os"
	"runtime/trace"
	"sync"
)

var (
	mu      sync.Mutex
	file    *os.File
	enabled bool
)

// Init starts tracing when DEVCMD_TRACE names a file.
// The returned function stops it.
func Init() func() {
	path := os.Getenv("DEVCMD_TRACE")
	if path == "" {
		return func() {}
	}

	mu.Lock()
	defer mu.Unlock()

	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "devcmd: failed to create trace file %s: %v\n", path, err)
		return func() {}
	}
	if err := trace.Start(f); err != nil {
		fmt.Fprintf(os.Stderr, "devcmd: failed to start trace: %v\n", err)
		_ = f.Close()
		return func() {}
	}
	file = f
	enabled = true

	return func() {
		mu.Lock()
		defer mu.Unlock()

		if enabled {
			trace.Stop()
			enabled = false
		}
		if file != nil {
			_ = file.Close()
			file = nil
		}
	}
}

// Region opens a trace region. Call the returned function to close it.
func Region(ctx context.Context, name string) func() {
	if !Enabled() {
		return func() {}
	}
	return trace.StartRegion(ctx, name).End
}

// Log attaches a message to the trace
func Log(ctx context.Context, category, message string) {
	if Enabled() {
		trace.Log(ctx, category, message)
	}
}

// Enabled reports whether a trace is being recorded
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}
