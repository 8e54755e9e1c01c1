package main

import "go.uber.org/zap"

// logger is a no-op by default so the engine stays silent when embedded.
// The CLI swaps in a real logger via SetLogger.
var logger = zap.NewNop()

// SetLogger installs the logger used for fallback warnings and search
// progress. Passing nil restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}
