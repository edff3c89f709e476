package signpost

// Handle is an opaque backend logging handle. Its meaning is private to the
// Backend that created it.
type Handle uintptr

// Kind is the kind of a signpost record.
type Kind uint8

const (
	// KindEvent is a single point in time.
	KindEvent Kind = iota
	// KindIntervalBegin opens an interval.
	KindIntervalBegin
	// KindIntervalEnd closes the interval begun with the same id.
	KindIntervalEnd
)

func (k Kind) String() string {
	switch k {
	case KindEvent:
		return "event"
	case KindIntervalBegin:
		return "interval_begin"
	case KindIntervalEnd:
		return "interval_end"
	default:
		return "unknown"
	}
}

// Backend is a tracing subsystem that signposts are emitted into.
//
// CreateHandle is called at most once per Logger. Enabled is checked before
// every Emit and should be cheap. Implementations must be safe for
// concurrent use. None of the methods report failures; a Backend that
// panics has the panic swallowed by the Logger.
type Backend interface {
	CreateHandle(subsystem, category string) Handle
	Enabled(h Handle) bool
	Emit(h Handle, kind Kind, id uint64, name string)
}
