//go:build !disable_signposts

package signpost

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

type countingBackend struct {
	creates atomic.Int64
	emits   atomic.Int64
}

func (c *countingBackend) CreateHandle(string, string) Handle {
	return Handle(0x1000 + c.creates.Inc())
}
func (c *countingBackend) Enabled(Handle) bool               { return true }
func (c *countingBackend) Emit(Handle, Kind, uint64, string) { c.emits.Inc() }

func TestGet_NoBackend(t *testing.T) {
	l := &Logger{subsystem: "com.example.app", category: CategoryPointsOfInterest}

	b, h := l.get()
	assert.Nil(t, b)
	assert.Equal(t, NoHandle, h)
	assert.False(t, l.ready.Load(), "the init gate must not be touched without a backend")

	var nilLogger *Logger
	b, h = nilLogger.get()
	assert.Nil(t, b)
	assert.Equal(t, NoHandle, h)
}

func TestGet_ResolvesOnce(t *testing.T) {
	cb := &countingBackend{}
	l := NewPOI("com.example.app").WithBackend(cb)
	assert.False(t, l.ready.Load())

	const n = 32
	handles := make([]Handle, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			_, handles[i] = l.get()
		}(i)
	}
	wg.Wait()

	assert.True(t, l.ready.Load())
	assert.Equal(t, int64(1), cb.creates.Load())
	for _, h := range handles {
		assert.Equal(t, Handle(0x1001), h)
	}
}

func TestBeginInterval_NoBackendSharesGuard(t *testing.T) {
	l := &Logger{subsystem: "com.example.app", category: CategoryPointsOfInterest}

	iv := l.BeginInterval(1, "Shared")
	require.Same(t, noopInterval, iv)
	iv.End()
	assert.False(t, noopInterval.closed.Load())
}

func TestSwallow_WithoutDiagnostics(t *testing.T) {
	l := NewPOI("com.example.app")
	assert.NotPanics(t, func() {
		defer l.swallow("test", 1, "Name")
		panic("ignored")
	})
}
