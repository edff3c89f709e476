package signpost

import (
	"sync"

	"go.uber.org/atomic"
)

// Logger emits signposts for a fixed (subsystem, category) identity.
//
// A Logger is usually declared once at package scope. The backend handle is
// created lazily on first use, exactly once, and is then read without
// locking. A Logger must not be copied after first use.
type Logger struct {
	subsystem string
	category  string
	backend   Backend

	handle   atomic.Uintptr
	ready    atomic.Bool
	initOnce sync.Once
}

// New returns a Logger bound to the platform backend. It does not touch the
// backend; the handle is created on first emission.
//
// subsystem is conventionally a reverse domain name and category one of the
// predefined Category constants. Both must be non-empty and free of NUL
// bytes.
func New(subsystem, category string) *Logger {
	return &Logger{
		subsystem: subsystem,
		category:  category,
		backend:   platformBackend,
	}
}

// NewPOI returns a Logger for the Points of Interest category.
func NewPOI(subsystem string) *Logger {
	return New(subsystem, CategoryPointsOfInterest)
}

// WithCategory returns a fresh Logger with the same subsystem and backend
// and the given category. The receiver is left untouched.
func (l *Logger) WithCategory(category string) *Logger {
	return &Logger{
		subsystem: l.subsystem,
		category:  category,
		backend:   l.backend,
	}
}

// WithBackend returns a fresh Logger with the same identity bound to b.
// A nil b yields a Logger on which every operation is a no-op.
func (l *Logger) WithBackend(b Backend) *Logger {
	return &Logger{
		subsystem: l.subsystem,
		category:  l.category,
		backend:   b,
	}
}

// Subsystem returns the subsystem the Logger was created with.
func (l *Logger) Subsystem() string { return l.subsystem }

// Category returns the Logger's category.
func (l *Logger) Category() string { return l.category }

// Enabled reports whether the backend would currently record signposts from
// this Logger.
func (l *Logger) Enabled() (enabled bool) {
	b, h := l.get()
	if b == nil {
		return false
	}
	defer l.swallow("enabled", idNull, emptyString)
	return b.Enabled(h)
}

// EmitEvent emits a single point-in-time signpost.
//
// The id is arbitrary but must not be one of the sentinel values zero or
// math.MaxUint64. name should be a constant; a name built at runtime works
// but defeats the backend's static-string fast path.
func (l *Logger) EmitEvent(id uint64, name string) {
	l.emit(KindEvent, id, name)
}

// BeginInterval starts a timed interval and returns the guard that ends it.
// Callers defer End on the result:
//
//	defer log.BeginInterval(2, "Compute result").End()
//
// The id pairs the begin and end records, so it must be unique among
// intervals on this Logger that can overlap in time. BeginInterval always
// returns a usable Interval, also when signposts are unavailable.
func (l *Logger) BeginInterval(id uint64, name string) *Interval {
	if tracingDisabled || l == nil || l.backend == nil {
		return noopInterval
	}
	l.emit(KindIntervalBegin, id, name)
	return &Interval{log: l, id: id, name: name}
}

// Interval runs fn inside an interval. The interval ends when fn returns or
// panics; a panic is propagated after the end record is emitted.
func (l *Logger) Interval(id uint64, name string, fn func()) {
	defer l.BeginInterval(id, name).End()
	fn()
}

// ReservedID reports whether id is one of the sentinel signpost ids that
// callers must not use.
func ReservedID(id uint64) bool {
	return id == idNull || id == idInvalid
}

// get resolves the backend handle, creating it on first use. It returns a nil
// Backend when signposts are disabled or no backend is bound, without
// touching the init gate.
func (l *Logger) get() (Backend, Handle) {
	if tracingDisabled || l == nil || l.backend == nil {
		return nil, NoHandle
	}
	if !l.ready.Load() {
		l.initOnce.Do(l.resolve)
	}
	return l.backend, Handle(l.handle.Load())
}

func (l *Logger) resolve() {
	defer l.ready.Store(true)
	defer l.swallow("create_handle", idNull, emptyString)
	l.handle.Store(uintptr(l.backend.CreateHandle(l.subsystem, l.category)))
}

func (l *Logger) emit(kind Kind, id uint64, name string) {
	b, h := l.get()
	if b == nil {
		return
	}
	defer l.swallow(kind.String(), id, name)
	if b.Enabled(h) {
		b.Emit(h, kind, id, name)
	}
}
