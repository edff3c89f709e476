package signpost

import "go.uber.org/atomic"

// noopInterval is handed out when no backend can ever be reached.
var noopInterval = &Interval{}

// Interval is the guard for an interval started by BeginInterval. It is
// open until End is called and closed afterwards; there is no way back.
type Interval struct {
	log    *Logger
	id     uint64
	name   string
	closed atomic.Bool
}

// End emits the interval end record with the id and name given to
// BeginInterval. Only the first call has an effect, so End is safe to defer
// and to call early.
func (iv *Interval) End() {
	if iv == nil || iv.log == nil {
		return
	}
	if !iv.closed.CompareAndSwap(false, true) {
		return
	}
	iv.log.emit(KindIntervalEnd, iv.id, iv.name)
}

// Open reports whether End has not yet run. Guards from a Logger without a
// backend are never open.
func (iv *Interval) Open() bool {
	return iv != nil && iv.log != nil && !iv.closed.Load()
}

// ID returns the interval id, or zero for a no-op guard.
func (iv *Interval) ID() uint64 {
	if iv == nil {
		return idNull
	}
	return iv.id
}

// Name returns the interval name, or "" for a no-op guard.
func (iv *Interval) Name() string {
	if iv == nil {
		return emptyString
	}
	return iv.name
}
