package capacity

import "github.com/planforge/aps-go/internal/domain/shared"

// RequiredSpan is one block of capacity an activity needs on a resource:
// a tick count, an overrun flag and the capacity cost of occupying it.
//
// Overrun means the activity's production state says it is still in this
// phase, but the computed remaining time is zero or negative - reported
// progress already exceeds the plan. An overrun span is never zero-length:
// it is floored to the minimum schedulable tick value because a
// zero-length block cannot be placed on a resource timeline while the
// state machine still requires the phase to occupy time.
type RequiredSpan struct {
	Ticks        shared.Ticks
	Overrun      bool
	CapacityCost float64
}

// ZeroSpan is a finished phase: no time, no cost, no overrun.
var ZeroSpan = RequiredSpan{}

// SetupSpan extends the base span with the three setup cost tiers and the
// gross (pre-reported-time-subtraction) span. Customizations that need
// the un-reduced value read GrossTicks.
type SetupSpan struct {
	RequiredSpan

	ResourceCost   float64 // from the resource's per-tick setup cost
	ProductionCost float64 // operation-level flat setup cost
	SequenceCost   float64 // from the sequence lookup row

	GrossTicks shared.Ticks
}

// TotalCost sums the three tiers.
func (s SetupSpan) TotalCost() float64 {
	return s.ResourceCost + s.ProductionCost + s.SequenceCost
}

// CleanoutSpan extends the base span with the three cost tiers and the
// clean-out grade.
type CleanoutSpan struct {
	RequiredSpan

	ResourceCost   float64
	ProductionCost float64
	SequenceCost   float64

	Grade int
}

// TotalCost sums the three tiers.
func (s CleanoutSpan) TotalCost() float64 {
	return s.ResourceCost + s.ProductionCost + s.SequenceCost
}

// Merge combines two clean-out requirements into the one that must be
// performed. The higher grade wins. On a grade tie the longer duration
// wins only when keepLongest is set; otherwise the other operand wins.
func (s CleanoutSpan) Merge(other CleanoutSpan, keepLongest bool) CleanoutSpan {
	if other.Grade > s.Grade {
		return other
	}
	if other.Grade < s.Grade {
		return s
	}
	if keepLongest && s.Ticks > other.Ticks {
		return s
	}
	return other
}
