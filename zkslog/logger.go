// Package zkslog holds the single package-level structured logger every
// builder package in this module reaches for when it wants to record a
// compile-time decision (a modular reduction was inserted, an MSM term was
// dropped) without threading a logger through every constructor. The shape
// mirrors gnark's own logger package (Logger/Disable, a package-level
// zerolog.Logger that writes console output to stderr until Disable swaps
// in a no-op logger) rather than gnark's module
// itself, which this repo does not depend on.
package zkslog

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu  sync.RWMutex
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).With().Timestamp().Logger()
)

// Logger returns the package-level logger every builder package logs
// through.
func Logger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return &log
}

// Disable silences every subsequent Logger() call (tests that don't want
// compile-time diagnostics cluttering output call this once).
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	log = zerolog.Nop()
}

// SetOutput redirects the package-level logger's output, preserving its
// timestamp/console formatting.
func SetOutput(w zerolog.ConsoleWriter) {
	mu.Lock()
	defer mu.Unlock()
	log = zerolog.New(w).With().Timestamp().Logger()
}
