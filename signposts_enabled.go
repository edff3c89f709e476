//go:build !disable_signposts

package signpost

const tracingDisabled = false
