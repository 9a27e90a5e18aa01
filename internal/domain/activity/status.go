package activity

// ProductionStatus tracks how far an activity has progressed through its
// phases. Values are ordered; comparisons like "at or past post-processing"
// rely on that ordering.
type ProductionStatus int

const (
	// StatusPlanned - no production reported yet
	StatusPlanned ProductionStatus = iota

	// StatusSetupStarted - setup has been reported started
	StatusSetupStarted

	// StatusRunning - processing is underway
	StatusRunning

	// StatusPostProcessing - processing done, post-processing underway
	StatusPostProcessing

	// StatusComplete - all phases reported finished
	StatusComplete
)

// String returns the external name of the status.
func (s ProductionStatus) String() string {
	switch s {
	case StatusPlanned:
		return "PLANNED"
	case StatusSetupStarted:
		return "SETUP_STARTED"
	case StatusRunning:
		return "RUNNING"
	case StatusPostProcessing:
		return "POST_PROCESSING"
	case StatusComplete:
		return "COMPLETE"
	default:
		return "UNKNOWN"
	}
}

// ParseProductionStatus maps an external status name back to its value.
// Unknown names fall back to StatusPlanned.
func ParseProductionStatus(name string) ProductionStatus {
	switch name {
	case "SETUP_STARTED":
		return StatusSetupStarted
	case "RUNNING":
		return StatusRunning
	case "POST_PROCESSING":
		return StatusPostProcessing
	case "COMPLETE":
		return StatusComplete
	default:
		return StatusPlanned
	}
}

// AtOrPast reports whether s has reached the given phase.
func (s ProductionStatus) AtOrPast(other ProductionStatus) bool {
	return s >= other
}

// InProduction reports whether any production has been reported. Released
// gating skips the operation-release check for activities already in
// production.
func (s ProductionStatus) InProduction() bool {
	return s > StatusPlanned && s < StatusComplete
}
