// Package signpost provides a thin, concurrency-safe facade for emitting
// signposts (point-in-time events and timed intervals) into a platform
// tracing subsystem, for consumption by an external profiling tool such as
// Instruments.
//
// Key features
//   - Lazy backend handle: a Logger resolves its backend handle on first use,
//     exactly once, no matter how many goroutines race to use it
//   - Scope-bound intervals: BeginInterval returns an Interval whose End is
//     deferred by the caller, so the closing record is emitted exactly once
//     on every exit path, including panics
//   - Fire-and-forget: emission never returns an error and never panics;
//     backend failures are swallowed and reported to the diagnostics logger
//   - Build-time disable: building with the disable_signposts tag turns every
//     operation into a no-op that never touches a backend
//
// On darwin with cgo enabled the default backend is os_signpost. On other
// platforms New returns a Logger without a backend and every operation is a
// no-op; bind a Journal or an otelbackend.Backend with WithBackend instead.
//
// The disabled build has its own tests; run them with
//
//	go test -tags disable_signposts ./...
//
// Typical usage
//
//	var poi = signpost.NewPOI("com.example.app")
//
//	func compute() {
//		defer poi.BeginInterval(42, "Compute").End()
//		poi.EmitEvent(7, "Checkpoint")
//	}
package signpost
