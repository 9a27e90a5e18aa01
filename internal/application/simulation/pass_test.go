package simulation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planforge/aps-go/internal/application/simulation"
	"github.com/planforge/aps-go/internal/domain/activity"
	"github.com/planforge/aps-go/internal/domain/capacity"
	"github.com/planforge/aps-go/internal/domain/shared"
)

func newPassActivity(id int64) *activity.InternalActivity {
	job := activity.NewJob(id, "JOB")
	order := activity.NewManufacturingOrder(id, job, "ITEM")
	op := activity.NewOperation(id, order, "OP", 1, activity.NewProductionInfo(10, 1))
	op.SetReleased(true)
	return activity.NewInternalActivity(id, op)
}

func TestPass_EligibilityBeforeBeginIsAnInvariantViolation(t *testing.T) {
	// Arrange
	a := newPassActivity(1)
	pass := simulation.NewPass(shared.NewMockClock(time.Time{}), capacity.NewCalculator(1), []*activity.InternalActivity{a})

	// Act
	_, err := pass.Eligible(a)

	// Assert
	require.Error(t, err)
	var invariant *shared.InvariantViolationError
	assert.ErrorAs(t, err, &invariant)
}

func TestPass_BeginResetsEveryActivity(t *testing.T) {
	// Arrange - stale flags and schedule from a previous pass
	a := newPassActivity(1)
	a.ResetTransientState()
	a.SetWaitingOptimizationRelease(true)
	a.SetScheduled(500)

	pass := simulation.NewPass(shared.NewMockClock(time.Time{}), capacity.NewCalculator(1), []*activity.InternalActivity{a})

	// Act
	pass.Begin()

	// Assert
	assert.False(t, a.IsScheduled())
	eligible, err := pass.Eligible(a)
	require.NoError(t, err)
	assert.True(t, eligible)
}

func TestPass_ReanchorProtocolWrapsThePass(t *testing.T) {
	// Arrange - anchored at 500 before the pass
	a := newPassActivity(1)
	a.ResetTransientState()
	a.SetScheduled(500)
	a.SetAnchor(true)

	pass := simulation.NewPass(shared.NewMockClock(time.Time{}), capacity.NewCalculator(1), []*activity.InternalActivity{a})

	// Act
	pass.Begin()
	assert.False(t, a.IsAnchored())

	a.OnScheduled(700)
	errs := pass.Finish()

	// Assert - anchored again, at the later scheduled start
	assert.Empty(t, errs)
	assert.True(t, a.IsAnchored())
	date, err := a.AnchorDate()
	require.NoError(t, err)
	assert.Equal(t, shared.Ticks(700), date)
}

func TestPass_FinishCollectsReanchorFailures(t *testing.T) {
	// Arrange - anchored activity that never gets scheduled during the pass
	a := newPassActivity(1)
	a.ResetTransientState()
	a.SetScheduled(500)
	a.SetAnchor(true)

	b := newPassActivity(2)

	pass := simulation.NewPass(shared.NewMockClock(time.Time{}), capacity.NewCalculator(1), []*activity.InternalActivity{a, b})

	// Act
	pass.Begin()
	b.OnScheduled(300)
	errs := pass.Finish()

	// Assert - one failure for the unscheduled anchored activity
	require.Len(t, errs, 1)
	var reanchorErr *activity.ReanchorUnscheduledError
	assert.ErrorAs(t, errs[0], &reanchorErr)
}

func TestPass_EligibleActivitiesFiltersGatedOnes(t *testing.T) {
	// Arrange
	released := newPassActivity(1)
	gated := newPassActivity(2)
	gated.Operation().SetReleased(false)

	pass := simulation.NewPass(nil, capacity.NewCalculator(1), []*activity.InternalActivity{released, gated})
	pass.Begin()

	// Act
	eligible, err := pass.EligibleActivities()

	// Assert
	require.NoError(t, err)
	require.Len(t, eligible, 1)
	assert.Equal(t, int64(1), eligible[0].ID())
}
