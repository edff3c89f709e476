// Package signposttest provides a recording signpost.Backend for tests.
//
//	rec := signposttest.NewRecorder()
//	log := signpost.NewPOI("com.example.app").WithBackend(rec)
//	func() { defer log.BeginInterval(42, "Compute").End() }()
//	rec.Strings() // [enabled_check interval_begin(42,"Compute") enabled_check interval_end(42,"Compute")]
package signposttest

import (
	"fmt"
	"sync"

	"github.com/Station-Manager/signpost"
	"go.uber.org/atomic"
)

// Op names a backend primitive.
type Op string

const (
	OpEnabled Op = "enabled_check"
	OpEmit    Op = "emit"
)

// Call is one recorded Enabled or Emit call.
type Call struct {
	Op     Op
	Handle signpost.Handle
	Kind   signpost.Kind
	ID     uint64
	Name   string
}

func (c Call) String() string {
	if c.Op == OpEnabled {
		return string(OpEnabled)
	}
	return fmt.Sprintf("%s(%d,%q)", c.Kind, c.ID, c.Name)
}

// Identity is a (subsystem, category) pair passed to CreateHandle.
type Identity struct {
	Subsystem string
	Category  string
}

// Recorder is a signpost.Backend that records every call. It is safe for
// concurrent use.
type Recorder struct {
	// OnCreate, when set, runs inside CreateHandle before the handle is
	// allocated.
	OnCreate func(subsystem, category string)

	creates  atomic.Int64
	disabled atomic.Bool

	mu     sync.Mutex
	idents []Identity
	calls  []Call
}

// NewRecorder returns an enabled Recorder with nothing recorded.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// CreateHandle records the identity and returns its 1-based index.
func (r *Recorder) CreateHandle(subsystem, category string) signpost.Handle {
	r.creates.Inc()
	if r.OnCreate != nil {
		r.OnCreate(subsystem, category)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.idents = append(r.idents, Identity{Subsystem: subsystem, Category: category})
	return signpost.Handle(len(r.idents))
}

// Enabled records the check and reports the state set by SetEnabled.
func (r *Recorder) Enabled(h signpost.Handle) bool {
	r.record(Call{Op: OpEnabled, Handle: h})
	return !r.disabled.Load()
}

// Emit records the signpost.
func (r *Recorder) Emit(h signpost.Handle, kind signpost.Kind, id uint64, name string) {
	r.record(Call{Op: OpEmit, Handle: h, Kind: kind, ID: id, Name: name})
}

// SetEnabled controls what Enabled reports. Recorders start enabled.
func (r *Recorder) SetEnabled(enabled bool) {
	r.disabled.Store(!enabled)
}

// Creates returns how many times CreateHandle ran.
func (r *Recorder) Creates() int {
	return int(r.creates.Load())
}

// Identities returns the identities passed to CreateHandle, in call order.
func (r *Recorder) Identities() []Identity {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Identity(nil), r.idents...)
}

// Calls returns the Enabled and Emit calls in the order they happened.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Emitted returns only the Emit calls.
func (r *Recorder) Emitted() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Call
	for _, c := range r.calls {
		if c.Op == OpEmit {
			out = append(out, c)
		}
	}
	return out
}

// Strings renders Calls with Call.String.
func (r *Recorder) Strings() []string {
	calls := r.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}

// Unpaired returns the interval begin records that have no matching end
// record with the same handle, id and name.
func (r *Recorder) Unpaired() []Call {
	type key struct {
		h    signpost.Handle
		id   uint64
		name string
	}
	open := map[key][]Call{}
	var order []key
	for _, c := range r.Emitted() {
		k := key{h: c.Handle, id: c.ID, name: c.Name}
		switch c.Kind {
		case signpost.KindIntervalBegin:
			if _, seen := open[k]; !seen {
				order = append(order, k)
			}
			open[k] = append(open[k], c)
		case signpost.KindIntervalEnd:
			if n := len(open[k]); n > 0 {
				open[k] = open[k][:n-1]
			}
		}
	}
	var out []Call
	for _, k := range order {
		out = append(out, open[k]...)
	}
	return out
}

// Reset forgets recorded calls. Identities and the create count are kept.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

func (r *Recorder) record(c Call) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
}
