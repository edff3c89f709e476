package signpost

import (
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

var (
	diag      atomic.Pointer[zerolog.Logger]
	nopLogger = zerolog.Nop()
)

// SetDiagnostics installs the logger that receives reports about swallowed
// backend failures. The default discards everything.
func SetDiagnostics(logger zerolog.Logger) {
	diag.Store(&logger)
}

func diagnostics() *zerolog.Logger {
	if l := diag.Load(); l != nil {
		return l
	}
	return &nopLogger
}

// swallow recovers a backend panic and reports it. It must be deferred
// directly.
func (l *Logger) swallow(op string, id uint64, name string) {
	r := recover()
	if r == nil {
		return
	}
	diagnostics().Warn().
		Str("op", op).
		Str("subsystem", l.subsystem).
		Str("category", l.category).
		Uint64("id", id).
		Str("name", name).
		Interface("panic", r).
		Msg("signpost backend failure swallowed")
}
