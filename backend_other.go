//go:build !darwin || !cgo || disable_signposts

package signpost

// No platform tracing subsystem is available; Loggers from New are no-ops
// until a backend is bound with WithBackend.
var platformBackend Backend
