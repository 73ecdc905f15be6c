// Package audit provides structured logging for Kernel audit events.
package audit

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu      sync.RWMutex
	sugared = zap.NewNop().Sugar()
)

// Configure swaps the underlying logger. Call once at process start-up
// with the Kernel's configured *zap.Logger; defaults to a no-op logger so
// audit.Log is always safe to call from tests.
func Configure(logger *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	sugared = logger.Sugar()
}

// Log writes a structured "[AUDIT] <event> key=value ..." entry at info
// level. args must be an even-length list of alternating keys and values,
// matching zap's SugaredLogger key/value convention.
func Log(event string, args ...interface{}) {
	mu.RLock()
	l := sugared
	mu.RUnlock()
	l.Infow("[AUDIT] "+event, args...)
}

// LogError writes a structured audit entry at error level.
func LogError(event string, err error, args ...interface{}) {
	mu.RLock()
	l := sugared
	mu.RUnlock()
	l.Errorw("[AUDIT] "+event, append(args, "error", err)...)
}
