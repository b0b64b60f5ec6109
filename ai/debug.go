package ai

import "sync/atomic"

// debugLoggingEnabled gates per-decision debug logs so the hot path skips
// building attributes when nobody is listening.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging toggles AI debug logs. Call it once at startup after
// flags are parsed.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled guards expensive debug log calls:
//
//	if ai.IsDebugEnabled() {
//	    slog.Debug("ai: state change", "from", prev, "to", next)
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
