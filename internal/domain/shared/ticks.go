package shared

// Ticks is the scheduling time unit used throughout the engine.
// All durations and timeline positions are expressed as a count of
// scenario ticks relative to the scenario epoch (tick zero).
type Ticks int64

const (
	// EpochZero is the scenario epoch sentinel. Timeline positions at or
	// before EpochZero are never valid scheduled dates or anchor dates.
	EpochZero Ticks = 0

	// MinSchedulableTicks is the smallest duration a block can occupy on a
	// resource timeline. Overrun spans are floored to this value because a
	// zero-length block cannot be placed, but the phase still has to
	// occupy time on the timeline.
	MinSchedulableTicks Ticks = 1
)

// Positive reports whether t is strictly after the scenario epoch.
func (t Ticks) Positive() bool {
	return t > EpochZero
}
