package signpost

import (
	"math"
	"sync"

	"go.uber.org/atomic"
)

// maxInternedNames bounds how many distinct signpost names a backend keeps
// converted for the life of the process.
const maxInternedNames = 256

// internTable caches backend-side copies of strings up to limit entries.
// Strings past the limit are still converted, but the caller owns the copy
// and must release it.
type internTable[P any] struct {
	limit int64
	alloc func(string) P
	free  func(P)

	n atomic.Int64
	m sync.Map // string -> P
}

func newInternTable[P any](limit int64, alloc func(string) P, free func(P)) *internTable[P] {
	if limit <= 0 {
		limit = math.MaxInt64
	}
	return &internTable[P]{limit: limit, alloc: alloc, free: free}
}

// get returns the copy of s. When owned is true the copy is a temporary the
// caller must pass to release.
func (t *internTable[P]) get(s string) (p P, owned bool) {
	if v, ok := t.m.Load(s); ok {
		return v.(P), false
	}
	p = t.alloc(s)
	if t.n.Inc() > t.limit {
		t.n.Dec()
		return p, true
	}
	v, loaded := t.m.LoadOrStore(s, p)
	if loaded {
		t.n.Dec()
		t.free(p)
		return v.(P), false
	}
	return p, false
}

func (t *internTable[P]) release(p P, owned bool) {
	if owned {
		t.free(p)
	}
}

// Len returns the number of interned strings.
func (t *internTable[P]) Len() int {
	return int(t.n.Load())
}
