//go:build !disable_signposts

package otelbackend

import (
	"testing"

	"github.com/Station-Manager/signpost"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupBackend creates a backend with an in-memory span recorder
func setupBackend(t *testing.T) (*tracetest.SpanRecorder, *Backend) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })
	return recorder, New(tp)
}

func attrMap(span sdktrace.ReadOnlySpan) map[attribute.Key]string {
	out := map[attribute.Key]string{}
	for _, kv := range span.Attributes() {
		out[kv.Key] = kv.Value.Emit()
	}
	return out
}

func TestBackend_Interval(t *testing.T) {
	recorder, b := setupBackend(t)
	log := signpost.NewPOI("com.example.app").WithBackend(b)

	iv := log.BeginInterval(42, "Compute")
	assert.Empty(t, recorder.Ended())
	assert.Len(t, recorder.Started(), 1)
	assert.Equal(t, 1, b.Open())

	iv.End()
	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "Compute", ended[0].Name())
	assert.Equal(t, "com.example.app", ended[0].InstrumentationScope().Name)

	attrs := attrMap(ended[0])
	assert.Equal(t, "42", attrs[AttrID])
	assert.Equal(t, signpost.CategoryPointsOfInterest, attrs[AttrCategory])
	assert.Equal(t, "interval", attrs[AttrKind])
	assert.Equal(t, 0, b.Open())
}

func TestBackend_OverlappingIntervals(t *testing.T) {
	recorder, b := setupBackend(t)
	log := signpost.NewPOI("com.example.app").WithBackend(b)

	outer := log.BeginInterval(1, "Outer")
	inner := log.BeginInterval(2, "Inner")
	inner.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "Inner", ended[0].Name())
	assert.True(t, outer.Open())

	outer.End()
	ended = recorder.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "Outer", ended[1].Name())
}

func TestBackend_Event(t *testing.T) {
	recorder, b := setupBackend(t)
	log := signpost.NewPOI("com.example.app").WithBackend(b)

	log.EmitEvent(7, "Checkpoint")

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "Checkpoint", ended[0].Name())
	assert.Equal(t, "event", attrMap(ended[0])[AttrKind])
	assert.Equal(t, 0, b.Open())
}

func TestBackend_ReusedOpenID(t *testing.T) {
	recorder, b := setupBackend(t)
	log := signpost.NewPOI("com.example.app").WithBackend(b)

	first := log.BeginInterval(5, "First")
	second := log.BeginInterval(5, "Second")
	require.Len(t, recorder.Ended(), 1, "the superseded span is ended")

	second.End()
	first.End()
	assert.Len(t, recorder.Ended(), 2)
	assert.Equal(t, 0, b.Open())
}

func TestBackend_Close(t *testing.T) {
	recorder, b := setupBackend(t)
	log := signpost.NewPOI("com.example.app").WithBackend(b)

	_ = log.BeginInterval(1, "Leaked")
	_ = log.BeginInterval(2, "Leaked")
	b.Close()

	assert.Len(t, recorder.Ended(), 2)
	assert.Equal(t, 0, b.Open())
}

func TestBackend_Handles(t *testing.T) {
	_, b := setupBackend(t)

	assert.False(t, b.Enabled(signpost.NoHandle))
	h := b.CreateHandle("com.example.app", signpost.CategoryDynamicTracing)
	assert.True(t, b.Enabled(h))
	assert.False(t, b.Enabled(h+1))
	assert.NotPanics(t, func() { b.Emit(h+1, signpost.KindEvent, 1, "Unknown") })
}

func TestNew_GlobalProvider(t *testing.T) {
	b := New(nil)
	require.NotNil(t, b.provider)
	log := signpost.NewPOI("com.example.app").WithBackend(b)
	assert.NotPanics(t, func() {
		defer log.BeginInterval(1, "Global").End()
	})
}
