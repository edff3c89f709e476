// Package otelbackend bridges signposts into OpenTelemetry tracing.
//
// Each Logger handle maps to a tracer named after the Logger's subsystem.
// An interval becomes a span that starts at the begin record and ends at the
// matching end record; an event becomes a zero-length span.
package otelbackend

import (
	"context"
	"strconv"
	"sync"

	"github.com/Station-Manager/signpost"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Span attributes set on every span the Backend starts: AttrCategory holds
// the Logger's category, AttrID the signpost id in decimal, and AttrKind is
// "interval" or "event".
const (
	AttrCategory = attribute.Key("signpost.category")
	AttrID       = attribute.Key("signpost.id")
	AttrKind     = attribute.Key("signpost.kind")
)

// Backend is a signpost.Backend that records signposts as OpenTelemetry
// spans. It is safe for concurrent use.
type Backend struct {
	provider trace.TracerProvider

	mu      sync.Mutex
	handles []handle
	spans   map[spanKey]trace.Span
}

type handle struct {
	tracer   trace.Tracer
	category string
}

type spanKey struct {
	h  signpost.Handle
	id uint64
}

// New returns a Backend that creates tracers from tp. A nil tp means the
// global provider.
func New(tp trace.TracerProvider) *Backend {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Backend{
		provider: tp,
		spans:    make(map[spanKey]trace.Span),
	}
}

// CreateHandle returns a handle bound to a tracer named after subsystem.
func (b *Backend) CreateHandle(subsystem, category string) signpost.Handle {
	tracer := b.provider.Tracer(subsystem)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handles = append(b.handles, handle{tracer: tracer, category: category})
	return signpost.Handle(len(b.handles))
}

// Enabled reports whether h was created by this Backend.
func (b *Backend) Enabled(h signpost.Handle) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return h != signpost.NoHandle && int(h) <= len(b.handles)
}

// Emit starts or ends the span for an interval, or records an event as a
// zero-length span.
func (b *Backend) Emit(h signpost.Handle, kind signpost.Kind, id uint64, name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if h == signpost.NoHandle || int(h) > len(b.handles) {
		return
	}
	hd := b.handles[h-1]
	key := spanKey{h: h, id: id}

	switch kind {
	case signpost.KindIntervalBegin:
		if stale, ok := b.spans[key]; ok {
			// id reused while still open; the pairing is already wrong
			stale.End()
		}
		b.spans[key] = b.start(hd, "interval", id, name)
	case signpost.KindIntervalEnd:
		if span, ok := b.spans[key]; ok {
			delete(b.spans, key)
			span.End()
		}
	default:
		b.start(hd, signpost.KindEvent.String(), id, name).End()
	}
}

// Open returns the number of intervals begun but not yet ended.
func (b *Backend) Open() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.spans)
}

// Close ends every open span.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for key, span := range b.spans {
		span.End()
		delete(b.spans, key)
	}
}

func (b *Backend) start(hd handle, kind string, id uint64, name string) trace.Span {
	_, span := hd.tracer.Start(context.Background(), name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			AttrCategory.String(hd.category),
			AttrID.String(strconv.FormatUint(id, 10)),
			AttrKind.String(kind),
		),
	)
	return span
}
