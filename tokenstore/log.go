package tokenstore

import "go.uber.org/zap"

// logger is the package-wide structured logger. It defaults to a no-op
// logger so importing this package never prints unless a caller opts in
// with SetLogger — mirroring the teacher lineage's practice of wiring a
// real logger in at the binary's entry point, not inside library code.
var logger = zap.NewNop()

// SetLogger installs l as the logger used by the concurrency wrapper for
// commit/discard diagnostics. Pass zap.NewNop() (the default) to
// silence it again.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}
