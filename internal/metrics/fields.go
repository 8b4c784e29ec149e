package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrProvider = "provider"
	AttrPlay     = "play"
	AttrProfile  = "profile"
	AttrPoints   = "points"
	AttrOutcome  = "outcome"
)

// Outcome labels for finished games.
const (
	OutcomeDecided = "decided"
	OutcomeTie     = "tie"
	OutcomeStopped = "stopped"
)
