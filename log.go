package pgembed

import (
	"tailscale.com/types/logger"
)

// Logf is the pluggable log sink (spec.md §6). It is the same shape the
// teacher depends on via tailscale.com/types/logger, rather than a
// locally redeclared function type.
type Logf = logger.Logf

// discard is used whenever a caller leaves a Logf nil.
func discard(string, ...any) {}

func orDiscard(f Logf) Logf {
	if f == nil {
		return discard
	}
	return f
}

// taggedLogf prefixes every line with a bracketed level, matching the
// severities spec.md §6 calls for: info for child output, warn for
// non-fatal anomalies, error for terminal failures.
func taggedLogf(f Logf, level string) Logf {
	f = orDiscard(f)
	return func(format string, args ...any) {
		f("["+level+"] "+format, args...)
	}
}

func infof(f Logf) Logf  { return taggedLogf(f, "info") }
func warnf(f Logf) Logf  { return taggedLogf(f, "warn") }
func errorf(f Logf) Logf { return taggedLogf(f, "error") }
