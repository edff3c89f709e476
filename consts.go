package signpost

import "math"

// Predefined log categories.
const (
	// CategoryPointsOfInterest shows up by default in the Points of Interest
	// instrument.
	CategoryPointsOfInterest = "PointsOfInterest"
	// CategoryDynamicTracing is disabled by default, reducing logging overhead.
	// It is enabled when the application runs under a profiler.
	CategoryDynamicTracing = "DynamicTracing"
	// CategoryDynamicStackTracing is like CategoryDynamicTracing but also
	// captures a stack trace for every signpost.
	CategoryDynamicStackTracing = "DynamicStackTracing"
)

const (
	// NoHandle is the sentinel handle returned when no backend is bound or
	// signposts are disabled at build time.
	NoHandle Handle = 0

	idNull    uint64 = 0
	idInvalid uint64 = math.MaxUint64

	emptyString = ""
)

const (
	errMsgNilConfig       = "Journal config is nil."
	errMsgNilJournal      = "Journal is nil."
	errMsgConfigInvalid   = "Journal configuration is invalid."
	errMsgWorkingDirUnset = "Working dir has not been set."
	errMsgNoChannels      = "No journal channels enabled."
	errMsgLogDir          = "Failed to create journal directory."
	errMsgExecName        = "Failed to get executable name."
	errMsgLevel           = "Failed to parse journal level."
	errMsgCloseFile       = "Failed to close journal file."
)
