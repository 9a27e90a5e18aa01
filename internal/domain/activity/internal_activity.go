package activity

import "github.com/planforge/aps-go/internal/domain/shared"

// InternalActivity is the full-featured activity kind scheduled inside the
// plant. It extends the base gating with move-related conditions,
// sequential-scheduling neighbors and the move constrainer protocol.
type InternalActivity struct {
	BaseActivity

	// Activities that must run immediately before this one on the same
	// resource. An unscheduled left neighbor blocks release.
	sequentialLeftNeighbors []*InternalActivity

	// Move constrainer protocol: constrainerCount is how many moving
	// activities currently hold this one back; constraining is the set
	// this activity holds back while it is itself being moved.
	constrainerCount int
	constraining     []*InternalActivity
}

// NewInternalActivity creates an internal activity for the operation.
func NewInternalActivity(id int64, operation *Operation) *InternalActivity {
	return &InternalActivity{
		BaseActivity: *NewBaseActivity(id, operation),
	}
}

// Sequential neighbors

// AddSequentialLeftNeighbor registers an activity that must be scheduled
// immediately before this one on the same resource.
func (a *InternalActivity) AddSequentialLeftNeighbor(left *InternalActivity) {
	a.sequentialLeftNeighbors = append(a.sequentialLeftNeighbors, left)
}

// SequentialLeftNeighbors returns the registered left neighbors.
func (a *InternalActivity) SequentialLeftNeighbors() []*InternalActivity {
	return a.sequentialLeftNeighbors
}

func (a *InternalActivity) hasUnscheduledLeftNeighbor() bool {
	for _, left := range a.sequentialLeftNeighbors {
		if !left.IsScheduled() {
			return true
		}
	}
	return false
}

// Move constrainer protocol. A moving activity registers itself as a
// constrainer of activities it could deadlock with (tank/routing cycles
// where two moved activities each wait on the other). Constrained
// activities stay unreleased while their count is positive; when the
// constrainer schedules, it releases everything it was holding.

// ConstrainerCount returns how many movers currently hold this activity.
func (a *InternalActivity) ConstrainerCount() int { return a.constrainerCount }

// Constrain registers this activity as a constrainer of other.
func (a *InternalActivity) Constrain(other *InternalActivity) {
	other.constrainerCount++
	a.constraining = append(a.constraining, other)
}

// ReleaseConstrained decrements the count on every activity this one was
// constraining. Called when the constrainer schedules.
func (a *InternalActivity) ReleaseConstrained() {
	for _, other := range a.constraining {
		if other.constrainerCount > 0 {
			other.constrainerCount--
		}
	}
	a.constraining = nil
}

// OnScheduled records the placement and releases every activity this one
// was constraining.
func (a *InternalActivity) OnScheduled(start shared.Ticks) {
	a.SetScheduled(start)
	a.ReleaseConstrained()
}

// ResetTransientState extends the base reset with the per-pass move
// constraint state.
func (a *InternalActivity) ResetTransientState() {
	a.BaseActivity.ResetTransientState()
	a.constrainerCount = 0
	a.constraining = nil
}

// Extended transient flag accessors.

func (a *InternalActivity) SetWaitingRightMovingNeighborRelease(v bool) {
	a.transient.waitingRightMovingNeighborRelease = v
}

func (a *InternalActivity) SetWaitingScheduledDateBeforeMove(v bool) {
	a.transient.waitingScheduledDateBeforeMove = v
}

func (a *InternalActivity) SetWaitingPredecessorOperationRelease(v bool) {
	a.transient.waitingPredecessorOperationRelease = v
}

func (a *InternalActivity) SetWaitingActivityMoved(v bool) {
	a.transient.waitingActivityMoved = v
}

func (a *InternalActivity) SetWaitingClockAdjustmentRelease(v bool) {
	a.transient.waitingClockAdjustmentRelease = v
}

func (a *InternalActivity) SetWaitingLeftMoveBlock(v bool) {
	a.transient.waitingLeftMoveBlock = v
}

func (a *InternalActivity) SetMovePreventIntersection(v bool) {
	a.transient.movePreventIntersection = v
}

// Released evaluates the base condition set and the internal-activity
// extension. Any condition holding means not released.
func (a *InternalActivity) Released() bool {
	if !a.BaseActivity.Released() {
		return false
	}
	t := &a.transient

	// Move-related waits only gate while this activity or a predecessor
	// operation is actively being moved.
	moving := t.beingMoved || a.operation.IsBeingMoved()
	if moving {
		if t.waitingRightMovingNeighborRelease ||
			t.waitingScheduledDateBeforeMove ||
			t.waitingPredecessorOperationRelease {
			return false
		}
	}

	if t.waitingActivityMoved || t.waitingClockAdjustmentRelease {
		return false
	}
	if t.waitingLeftMoveBlock || t.movePreventIntersection {
		return false
	}
	if a.hasUnscheduledLeftNeighbor() {
		return false
	}
	if a.constrainerCount > 0 {
		return false
	}

	// The owning operation must itself be released, unless production has
	// already started on this activity.
	if !a.operation.IsReleased() && !a.status.InProduction() {
		return false
	}
	return true
}
