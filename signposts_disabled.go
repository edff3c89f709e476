//go:build disable_signposts

package signpost

// Built with disable_signposts: every Logger operation is a no-op and no
// backend is ever called.
const tracingDisabled = true
