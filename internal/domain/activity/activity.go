package activity

import (
	"fmt"

	"github.com/planforge/aps-go/internal/domain/catalog"
	"github.com/planforge/aps-go/internal/domain/shared"
)

// LockState is the derived lock classification of an activity. It is
// computed from the lock map and the requirement count, never stored.
type LockState int

const (
	Unlocked LockState = iota
	PartiallyLocked
	Locked
)

// String returns the external name of the lock state.
func (s LockState) String() string {
	switch s {
	case Unlocked:
		return "UNLOCKED"
	case PartiallyLocked:
		return "PARTIALLY_LOCKED"
	case Locked:
		return "LOCKED"
	default:
		return "UNKNOWN"
	}
}

// BaseActivity is the per-simulation state machine for one schedulable
// unit of work. It carries the release gating flags, the anchoring
// protocol, the resource lock map, the per-requirement satiator array and
// the composite score bookkeeping.
//
// A BaseActivity references its owning Operation but does not own it; the
// scenario arena owns the whole object graph for the duration of a pass.
// None of this state is safe for concurrent mutation - a scenario is
// single-threaded by design.
type BaseActivity struct {
	id        int64
	operation *Operation

	status ProductionStatus

	// Quantity state, mutated by production reporting outside this core.
	requiredFinishQty  float64
	reportedGoodQty    float64
	reportedScrapQty   float64
	reportedRunTicks   shared.Ticks
	reportedSetupTicks shared.Ticks
	reportedPostTicks  shared.Ticks

	persistent persistentFlags
	transient  transientFlags

	// One nullable slot per resource requirement; nil = not yet scheduled.
	satiators []*catalog.Resource

	// Requirement index -> resource the requirement is pinned to.
	locks            map[int]shared.ResourceKey
	tempLockActive   bool
	tempLockSnapshot map[int]shared.ResourceKey

	// Requirement index -> resource forced by an in-flight move.
	moveResources map[int]shared.ResourceKey

	anchorTicks    shared.Ticks
	scheduledStart shared.Ticks
	scheduled      bool

	scores *ScoreBoard
}

// NewBaseActivity creates an activity for the given operation. Satiators
// are not initialized until the first simulation pass calls
// ResetTransientState.
func NewBaseActivity(id int64, operation *Operation) *BaseActivity {
	return &BaseActivity{
		id:        id,
		operation: operation,
		locks:     make(map[int]shared.ResourceKey),
		scores:    NewScoreBoard(),
	}
}

func (a *BaseActivity) ID() int64              { return a.id }
func (a *BaseActivity) Operation() *Operation  { return a.operation }
func (a *BaseActivity) Status() ProductionStatus { return a.status }
func (a *BaseActivity) Scores() *ScoreBoard    { return a.scores }

// Quantity state

func (a *BaseActivity) RequiredFinishQty() float64       { return a.requiredFinishQty }
func (a *BaseActivity) ReportedGoodQty() float64         { return a.reportedGoodQty }
func (a *BaseActivity) ReportedScrapQty() float64        { return a.reportedScrapQty }
func (a *BaseActivity) ReportedRunTicks() shared.Ticks   { return a.reportedRunTicks }
func (a *BaseActivity) ReportedSetupTicks() shared.Ticks { return a.reportedSetupTicks }
func (a *BaseActivity) ReportedPostTicks() shared.Ticks  { return a.reportedPostTicks }

// SetRequiredFinishQty sets the quantity the activity must finish.
func (a *BaseActivity) SetRequiredFinishQty(qty float64) { a.requiredFinishQty = qty }

// ReportProduction records externally-reported progress. Status moves
// forward only; production reporting never rewinds a phase.
func (a *BaseActivity) ReportProduction(status ProductionStatus, goodQty, scrapQty float64, runTicks, setupTicks, postTicks shared.Ticks) {
	if status > a.status {
		a.status = status
	}
	a.reportedGoodQty = goodQty
	a.reportedScrapQty = scrapQty
	a.reportedRunTicks = runTicks
	a.reportedSetupTicks = setupTicks
	a.reportedPostTicks = postTicks
}

// Transient state lifecycle

// ResetTransientState wipes every per-pass flag, reinitializes the
// satiator array to one empty slot per requirement, clears move overrides
// and drops stale scores. A fresh pass must call this on every activity
// before the first eligibility check on any activity.
func (a *BaseActivity) ResetTransientState() {
	a.transient = transientFlags{}
	a.satiators = make([]*catalog.Resource, a.operation.ResourceRequirementCount())
	a.moveResources = make(map[int]shared.ResourceKey)
	a.scores.Clear()
	a.scheduled = false
	a.scheduledStart = shared.EpochZero
}

// Satiators

// Satiator returns the resource currently satisfying requirement i, or
// nil when the requirement is not yet scheduled.
func (a *BaseActivity) Satiator(i int) (*catalog.Resource, error) {
	if i < 0 || i >= len(a.satiators) {
		return nil, NewRequirementIndexError(a.id, i, len(a.satiators))
	}
	return a.satiators[i], nil
}

// SetSatiator records the resource tentatively satisfying requirement i.
func (a *BaseActivity) SetSatiator(i int, r *catalog.Resource) error {
	if i < 0 || i >= len(a.satiators) {
		return NewRequirementIndexError(a.id, i, len(a.satiators))
	}
	a.satiators[i] = r
	return nil
}

// SatiatorCount returns the number of requirement slots.
func (a *BaseActivity) SatiatorCount() int { return len(a.satiators) }

// Scheduling

// SetScheduled records the scheduled start produced by block placement.
func (a *BaseActivity) SetScheduled(start shared.Ticks) {
	a.scheduled = true
	a.scheduledStart = start
}

// ClearSchedule marks the activity unscheduled.
func (a *BaseActivity) ClearSchedule() {
	a.scheduled = false
	a.scheduledStart = shared.EpochZero
}

func (a *BaseActivity) IsScheduled() bool            { return a.scheduled }
func (a *BaseActivity) ScheduledStart() shared.Ticks { return a.scheduledStart }

// Anchoring protocol

// IsAnchored reports the live anchored flag.
func (a *BaseActivity) IsAnchored() bool { return a.persistent.anchored }

// AnchorDateHasBeenSet reports whether an anchor date was ever set.
func (a *BaseActivity) AnchorDateHasBeenSet() bool { return a.persistent.anchorDateSet }

// AnchorDate returns the anchor date. Reading it before any anchor was
// set is an invariant violation.
func (a *BaseActivity) AnchorDate() (shared.Ticks, error) {
	if !a.persistent.anchorDateSet {
		return shared.EpochZero, NewAnchorNotSetError(a.id)
	}
	return a.anchorTicks, nil
}

// SetAnchor anchors the activity at its current scheduled start, or
// unanchors it. Anchoring an unscheduled activity is a no-op.
func (a *BaseActivity) SetAnchor(anchored bool) {
	if !anchored {
		a.persistent.anchored = false
		a.persistent.anchorDateSet = false
		a.anchorTicks = shared.EpochZero
		return
	}
	if !a.scheduled {
		return
	}
	a.persistent.anchored = true
	a.persistent.anchorDateSet = true
	a.anchorTicks = a.scheduledStart
}

// ExternalAnchor sets the anchor date directly, as instructed by an
// external system. Dates at or before the epoch are rejected.
func (a *BaseActivity) ExternalAnchor(date shared.Ticks) error {
	if !date.Positive() {
		return NewInvalidAnchorDateError(a.id, date)
	}
	a.persistent.anchored = true
	a.persistent.anchorDateSet = true
	a.anchorTicks = date
	return nil
}

// ReanchorSetup captures the anchored flag and releases it so the
// simulation can reschedule freely. Call Reanchor after the pass.
func (a *BaseActivity) ReanchorSetup() {
	a.transient.wasAnchored = a.persistent.anchored
	a.persistent.anchored = false
}

// Reanchor restores anchoring after a simulation pass. The new scheduled
// start wins over the old anchor date when it is later - a later date is
// taken to reflect a real constraint tightening. Reanchoring an
// unscheduled activity is an invariant violation.
func (a *BaseActivity) Reanchor() error {
	if !a.transient.wasAnchored {
		return nil
	}
	if !a.scheduled {
		return NewReanchorUnscheduledError(a.id)
	}
	a.persistent.anchored = true
	a.persistent.anchorDateSet = true
	if a.scheduledStart > a.anchorTicks {
		a.anchorTicks = a.scheduledStart
	}
	a.transient.wasAnchored = false
	return nil
}

// Resource locking

// LockState derives the three-valued classification from the lock count.
func (a *BaseActivity) LockState() LockState {
	count := a.operation.ResourceRequirementCount()
	switch {
	case len(a.locks) == 0:
		return Unlocked
	case len(a.locks) == count:
		return Locked
	default:
		return PartiallyLocked
	}
}

// LockedRequirementCount returns the number of pinned requirements.
func (a *BaseActivity) LockedRequirementCount() int { return len(a.locks) }

// LockedResource returns the resource requirement i is pinned to.
func (a *BaseActivity) LockedResource(i int) (shared.ResourceKey, bool) {
	key, ok := a.locks[i]
	return key, ok
}

// LockRequirement pins one scheduled requirement to its current satiator.
func (a *BaseActivity) LockRequirement(i int) error {
	r, err := a.Satiator(i)
	if err != nil {
		return err
	}
	if r == nil {
		return NewRequirementNotScheduledError(a.id, i)
	}
	a.locks[i] = r.Key()
	return nil
}

// Lock with true pins every currently-scheduled requirement to its current
// resource; unscheduled requirements stay unlocked. Lock with false clears
// all locks.
func (a *BaseActivity) Lock(locked bool) {
	if !locked {
		a.locks = make(map[int]shared.ResourceKey)
		return
	}
	for i, r := range a.satiators {
		if r != nil {
			a.locks[i] = r.Key()
		} else {
			delete(a.locks, i)
		}
	}
}

// TempLock snapshots the lock map and force-locks every scheduled
// requirement, for a scoped operation such as a trial move. TempLockClear
// restores the snapshot; callers must pair the two on every exit path.
func (a *BaseActivity) TempLock() {
	if a.tempLockActive {
		return
	}
	snapshot := make(map[int]shared.ResourceKey, len(a.locks))
	for i, key := range a.locks {
		snapshot[i] = key
	}
	a.tempLockSnapshot = snapshot
	a.tempLockActive = true
	a.Lock(true)
}

// TempLockClear restores the lock map captured by TempLock.
func (a *BaseActivity) TempLockClear() {
	if !a.tempLockActive {
		return
	}
	a.locks = a.tempLockSnapshot
	a.tempLockSnapshot = nil
	a.tempLockActive = false
}

// Move overrides

// SetMoveResource forces requirement i onto a resource for the duration
// of a move.
func (a *BaseActivity) SetMoveResource(i int, key shared.ResourceKey) {
	a.moveResources[i] = key
}

// MoveResource returns the forced resource for requirement i, if any.
func (a *BaseActivity) MoveResource(i int) (shared.ResourceKey, bool) {
	key, ok := a.moveResources[i]
	return key, ok
}

// Transient flag accessors, driven by the simulation driver. "Events"
// such as optimization-release or clock-adjustment are modeled as these
// flags being cleared, not as callbacks.

func (a *BaseActivity) SetWaitingOptimizationRelease(v bool)  { a.transient.waitingOptimizationRelease = v }
func (a *BaseActivity) SetWaitingAnchorRelease(v bool)        { a.transient.waitingAnchorRelease = v }
func (a *BaseActivity) SetWaitingPredecessorBatch(v bool)     { a.transient.waitingPredecessorBatch = v }
func (a *BaseActivity) SetWaitingRightCompressRelease(v bool) { a.transient.waitingRightCompressRelease = v }
func (a *BaseActivity) SetBeingMoved(v bool)                  { a.transient.beingMoved = v }
func (a *BaseActivity) SetSequenced(v bool)                   { a.transient.sequenced = v }

func (a *BaseActivity) IsBeingMoved() bool { return a.transient.beingMoved }
func (a *BaseActivity) IsSequenced() bool  { return a.transient.sequenced }

// Released evaluates the base gating condition set: the activity is
// released when none of the base waiting conditions hold. More specific
// activity kinds layer further conditions on top.
func (a *BaseActivity) Released() bool {
	t := &a.transient
	if t.waitingOptimizationRelease ||
		t.waitingAnchorRelease ||
		t.waitingPredecessorBatch ||
		t.waitingRightCompressRelease {
		return false
	}
	return true
}

// String provides a human-readable representation.
func (a *BaseActivity) String() string {
	return fmt.Sprintf("Activity[%d, op=%d, status=%s, lock=%s]",
		a.id, a.operation.ID(), a.status, a.LockState())
}
