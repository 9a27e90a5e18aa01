package capacity

import (
	"fmt"

	"github.com/planforge/aps-go/internal/domain/shared"
)

// ZeroQuantityPerCycleError is raised when span calculation encounters a
// resolved quantity-per-cycle of zero. Dividing the remaining quantity by
// it would be meaningless; this signals corrupted production data and
// aborts the simulation step.
type ZeroQuantityPerCycleError struct {
	*shared.InvariantViolationError
	ActivityID int64
	Resource   shared.ResourceKey
}

func NewZeroQuantityPerCycleError(activityID int64, resource shared.ResourceKey) *ZeroQuantityPerCycleError {
	return &ZeroQuantityPerCycleError{
		InvariantViolationError: shared.NewInvariantViolation("CalculateProcessingTimeSpan",
			fmt.Sprintf("activity %d: zero quantity-per-cycle on resource %s", activityID, resource)),
		ActivityID: activityID,
		Resource:   resource,
	}
}
