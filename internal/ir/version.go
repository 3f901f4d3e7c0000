package ir

// Version constants for the plan format and engine.
const (
	// PlanVersion is the plan text format version.
	PlanVersion = "1"

	// EngineVersion is the tagmerge engine version.
	EngineVersion = "0.1.0"
)
