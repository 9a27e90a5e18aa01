package activity

import (
	"fmt"

	"github.com/planforge/aps-go/internal/domain/shared"
)

// AnchorNotSetError is raised when the anchor date is read before any
// anchor was ever set. Reading an unset anchor is an invariant violation,
// not a case for a sentinel value.
type AnchorNotSetError struct {
	*shared.InvariantViolationError
	ActivityID int64
}

func NewAnchorNotSetError(activityID int64) *AnchorNotSetError {
	return &AnchorNotSetError{
		InvariantViolationError: shared.NewInvariantViolation("AnchorDate",
			fmt.Sprintf("activity %d: anchor date read before being set", activityID)),
		ActivityID: activityID,
	}
}

// ReanchorUnscheduledError is raised when Reanchor is called on an
// activity that ended the simulation unscheduled.
type ReanchorUnscheduledError struct {
	*shared.InvariantViolationError
	ActivityID int64
}

func NewReanchorUnscheduledError(activityID int64) *ReanchorUnscheduledError {
	return &ReanchorUnscheduledError{
		InvariantViolationError: shared.NewInvariantViolation("Reanchor",
			fmt.Sprintf("activity %d: reanchor of an unscheduled activity", activityID)),
		ActivityID: activityID,
	}
}

// InvalidAnchorDateError is raised by ExternalAnchor for dates at or
// before the scenario epoch. This is a non-recoverable input error.
type InvalidAnchorDateError struct {
	*shared.DomainError
	ActivityID int64
	Date       shared.Ticks
}

func NewInvalidAnchorDateError(activityID int64, date shared.Ticks) *InvalidAnchorDateError {
	return &InvalidAnchorDateError{
		DomainError: shared.NewDomainError(
			fmt.Sprintf("activity %d: external anchor date %d is not after the epoch", activityID, date)),
		ActivityID: activityID,
		Date:       date,
	}
}

// RequirementNotScheduledError is raised when a lock is requested for a
// resource requirement that has no satiator.
type RequirementNotScheduledError struct {
	*shared.DomainError
	ActivityID  int64
	Requirement int
}

func NewRequirementNotScheduledError(activityID int64, requirement int) *RequirementNotScheduledError {
	return &RequirementNotScheduledError{
		DomainError: shared.NewDomainError(
			fmt.Sprintf("activity %d: requirement %d is not scheduled, cannot lock", activityID, requirement)),
		ActivityID:  activityID,
		Requirement: requirement,
	}
}

// RequirementIndexError is raised for satiator or lock access outside the
// requirement range.
type RequirementIndexError struct {
	*shared.DomainError
	ActivityID  int64
	Requirement int
	Count       int
}

func NewRequirementIndexError(activityID int64, requirement, count int) *RequirementIndexError {
	return &RequirementIndexError{
		DomainError: shared.NewDomainError(
			fmt.Sprintf("activity %d: requirement index %d out of range (count %d)", activityID, requirement, count)),
		ActivityID:  activityID,
		Requirement: requirement,
		Count:       count,
	}
}
