package activity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planforge/aps-go/internal/domain/activity"
	"github.com/planforge/aps-go/internal/domain/catalog"
	"github.com/planforge/aps-go/internal/domain/shared"
)

func newTestOperation(requirementCount int) *activity.Operation {
	job := activity.NewJob(1, "JOB-1")
	order := activity.NewManufacturingOrder(1, job, "ITEM-1")
	info := activity.NewProductionInfo(10, 1)
	return activity.NewOperation(1, order, "OP-10", requirementCount, info)
}

func newTestActivity(requirementCount int) *activity.InternalActivity {
	a := activity.NewInternalActivity(1, newTestOperation(requirementCount))
	a.ResetTransientState()
	return a
}

func newTestResource(name string) *catalog.Resource {
	return catalog.NewResource(shared.ResourceKey{Plant: "P1", Department: "D1", Resource: name}, 10, 1)
}

func TestAnchorDate_BeforeAnySetIsAnError(t *testing.T) {
	// Arrange
	a := newTestActivity(1)

	// Act
	_, err := a.AnchorDate()

	// Assert
	require.Error(t, err)
	var anchorErr *activity.AnchorNotSetError
	assert.ErrorAs(t, err, &anchorErr)
}

func TestSetAnchor_OnUnscheduledActivityIsANoOp(t *testing.T) {
	// Arrange
	a := newTestActivity(1)

	// Act
	a.SetAnchor(true)

	// Assert
	assert.False(t, a.IsAnchored())
	assert.False(t, a.AnchorDateHasBeenSet())
}

func TestSetAnchor_CapturesScheduledStart(t *testing.T) {
	// Arrange
	a := newTestActivity(1)
	a.SetScheduled(500)

	// Act
	a.SetAnchor(true)

	// Assert
	require.True(t, a.IsAnchored())
	date, err := a.AnchorDate()
	require.NoError(t, err)
	assert.Equal(t, shared.Ticks(500), date)
}

func TestExternalAnchor_ExactReadBack(t *testing.T) {
	// Arrange
	a := newTestActivity(1)

	// Act
	err := a.ExternalAnchor(1234)

	// Assert
	require.NoError(t, err)
	assert.True(t, a.IsAnchored())
	date, err := a.AnchorDate()
	require.NoError(t, err)
	assert.Equal(t, shared.Ticks(1234), date)
}

func TestExternalAnchor_RejectsNonPositiveDates(t *testing.T) {
	a := newTestActivity(1)

	err := a.ExternalAnchor(0)

	require.Error(t, err)
	var invalidErr *activity.InvalidAnchorDateError
	assert.ErrorAs(t, err, &invalidErr)
	assert.False(t, a.IsAnchored())
}

func TestReanchor_RestoresAnchorAfterPass(t *testing.T) {
	// Arrange - anchored at 500 going into the pass
	a := newTestActivity(1)
	a.SetScheduled(500)
	a.SetAnchor(true)

	// Act - the pass releases the anchor, reschedules earlier, reanchors
	a.ReanchorSetup()
	assert.False(t, a.IsAnchored())
	a.SetScheduled(300)
	err := a.Reanchor()

	// Assert - the earlier start does not move the anchor back
	require.NoError(t, err)
	assert.True(t, a.IsAnchored())
	date, _ := a.AnchorDate()
	assert.Equal(t, shared.Ticks(500), date)
}

func TestReanchor_LaterStartMovesTheAnchorForward(t *testing.T) {
	// Arrange
	a := newTestActivity(1)
	a.SetScheduled(500)
	a.SetAnchor(true)

	// Act
	a.ReanchorSetup()
	a.SetScheduled(800)
	err := a.Reanchor()

	// Assert
	require.NoError(t, err)
	date, _ := a.AnchorDate()
	assert.Equal(t, shared.Ticks(800), date)
}

func TestReanchor_UnscheduledIsAnInvariantViolation(t *testing.T) {
	// Arrange
	a := newTestActivity(1)
	a.SetScheduled(500)
	a.SetAnchor(true)
	a.ReanchorSetup()
	a.ClearSchedule()

	// Act
	err := a.Reanchor()

	// Assert
	require.Error(t, err)
	var reanchorErr *activity.ReanchorUnscheduledError
	assert.ErrorAs(t, err, &reanchorErr)
}

func TestReanchor_NoOpWhenNotAnchoredBeforeThePass(t *testing.T) {
	a := newTestActivity(1)
	a.ReanchorSetup()

	err := a.Reanchor()

	require.NoError(t, err)
	assert.False(t, a.IsAnchored())
}

func TestLockState_DerivedFromLockedRequirementCount(t *testing.T) {
	// Arrange - three requirements, two satisfied
	a := newTestActivity(3)
	require.NoError(t, a.SetSatiator(0, newTestResource("R1")))
	require.NoError(t, a.SetSatiator(1, newTestResource("R2")))

	// Act & Assert
	assert.Equal(t, activity.Unlocked, a.LockState())

	a.Lock(true)
	assert.Equal(t, activity.PartiallyLocked, a.LockState())
	assert.Equal(t, 2, a.LockedRequirementCount())

	require.NoError(t, a.SetSatiator(2, newTestResource("R3")))
	a.Lock(true)
	assert.Equal(t, activity.Locked, a.LockState())

	a.Lock(false)
	assert.Equal(t, activity.Unlocked, a.LockState())
}

func TestLockRequirement_UnscheduledRequirementIsAnError(t *testing.T) {
	a := newTestActivity(2)

	err := a.LockRequirement(0)

	require.Error(t, err)
	var notScheduled *activity.RequirementNotScheduledError
	assert.ErrorAs(t, err, &notScheduled)
}

func TestSatiator_IndexOutOfRangeIsAnError(t *testing.T) {
	a := newTestActivity(2)

	_, err := a.Satiator(5)

	require.Error(t, err)
	var indexErr *activity.RequirementIndexError
	assert.ErrorAs(t, err, &indexErr)
}

func TestTempLock_RestoresSnapshotOnClear(t *testing.T) {
	// Arrange - one requirement locked, one scheduled but unlocked
	a := newTestActivity(2)
	require.NoError(t, a.SetSatiator(0, newTestResource("R1")))
	require.NoError(t, a.SetSatiator(1, newTestResource("R2")))
	require.NoError(t, a.LockRequirement(0))

	// Act
	a.TempLock()
	assert.Equal(t, activity.Locked, a.LockState())
	a.TempLockClear()

	// Assert
	assert.Equal(t, activity.PartiallyLocked, a.LockState())
	assert.Equal(t, 1, a.LockedRequirementCount())
}

func TestResetTransientState_ReinitializesSatiators(t *testing.T) {
	// Arrange
	a := newTestActivity(2)
	require.NoError(t, a.SetSatiator(0, newTestResource("R1")))
	a.SetScheduled(100)

	// Act
	a.ResetTransientState()

	// Assert
	assert.Equal(t, 2, a.SatiatorCount())
	r, err := a.Satiator(0)
	require.NoError(t, err)
	assert.Nil(t, r)
	assert.False(t, a.IsScheduled())
}

func TestReleased_BaseWaitingFlagsGate(t *testing.T) {
	// Arrange
	a := newTestActivity(1)
	a.Operation().SetReleased(true)
	assert.True(t, a.Released())

	// Act & Assert - each base flag alone blocks release
	a.SetWaitingOptimizationRelease(true)
	assert.False(t, a.Released())
	a.SetWaitingOptimizationRelease(false)

	a.SetWaitingAnchorRelease(true)
	assert.False(t, a.Released())
	a.SetWaitingAnchorRelease(false)

	a.SetWaitingPredecessorBatch(true)
	assert.False(t, a.Released())
	a.SetWaitingPredecessorBatch(false)

	a.SetWaitingRightCompressRelease(true)
	assert.False(t, a.Released())
	a.SetWaitingRightCompressRelease(false)

	assert.True(t, a.Released())
}

func TestReleased_MoveConditionsOnlyGateWhileMoving(t *testing.T) {
	// Arrange
	a := newTestActivity(1)
	a.Operation().SetReleased(true)

	// The move-scoped wait is ignored while nothing is being moved
	a.SetWaitingScheduledDateBeforeMove(true)
	assert.True(t, a.Released())

	// Act - once the activity is being moved the same flag gates
	a.SetBeingMoved(true)

	// Assert
	assert.False(t, a.Released())
}

func TestReleased_UnreleasedOperationGatesUnlessInProduction(t *testing.T) {
	// Arrange
	a := newTestActivity(1)
	assert.False(t, a.Released())

	// Act - production already started on this activity
	a.ReportProduction(activity.StatusRunning, 0, 0, 5, 0, 0)

	// Assert - the operation-release check is skipped in production
	assert.True(t, a.Released())
}

func TestReleased_ConstrainerHoldsUntilTheMoverSchedules(t *testing.T) {
	// Arrange
	mover := newTestActivity(1)
	held := activity.NewInternalActivity(2, newTestOperation(1))
	held.ResetTransientState()
	held.Operation().SetReleased(true)

	mover.Constrain(held)
	assert.Equal(t, 1, held.ConstrainerCount())
	assert.False(t, held.Released())

	// Act
	mover.OnScheduled(400)

	// Assert
	assert.Equal(t, 0, held.ConstrainerCount())
	assert.True(t, held.Released())
	assert.True(t, mover.IsScheduled())
	assert.Equal(t, shared.Ticks(400), mover.ScheduledStart())
}

func TestReleased_UnscheduledLeftNeighborGates(t *testing.T) {
	// Arrange
	left := newTestActivity(1)
	a := activity.NewInternalActivity(2, newTestOperation(1))
	a.ResetTransientState()
	a.Operation().SetReleased(true)
	a.AddSequentialLeftNeighbor(left)

	// Act & Assert
	assert.False(t, a.Released())

	left.SetScheduled(100)
	assert.True(t, a.Released())
}

func TestReportProduction_StatusNeverRewinds(t *testing.T) {
	// Arrange
	a := newTestActivity(1)
	a.ReportProduction(activity.StatusRunning, 10, 1, 50, 20, 0)

	// Act - a late-arriving setup report must not rewind the phase
	a.ReportProduction(activity.StatusSetupStarted, 12, 1, 60, 25, 0)

	// Assert
	assert.Equal(t, activity.StatusRunning, a.Status())
	assert.Equal(t, 12.0, a.ReportedGoodQty())
	assert.Equal(t, shared.Ticks(60), a.ReportedRunTicks())
}

func TestProductionStatus_Ordering(t *testing.T) {
	assert.True(t, activity.StatusRunning.AtOrPast(activity.StatusSetupStarted))
	assert.False(t, activity.StatusPlanned.AtOrPast(activity.StatusRunning))

	assert.False(t, activity.StatusPlanned.InProduction())
	assert.True(t, activity.StatusSetupStarted.InProduction())
	assert.True(t, activity.StatusPostProcessing.InProduction())
	assert.False(t, activity.StatusComplete.InProduction())
}

func TestScoreBoard_AccumulatesPerResource(t *testing.T) {
	// Arrange
	a := newTestActivity(1)
	key := shared.ResourceKey{Plant: "P1", Department: "D1", Resource: "R1"}

	// Act
	a.Scores().BeginScoring(key)
	a.Scores().AddFactor(key, "setup", 10, 66.7)
	a.Scores().AddFactor(key, "cleanout", 5, 33.3)

	// Assert
	assert.Equal(t, 15.0, a.Scores().Total(key))
	factors := a.Scores().Factors(key)
	assert.Len(t, factors, 2)
}
