package lookup

import (
	"fmt"

	"github.com/planforge/aps-go/internal/domain/shared"
)

// TriggerKind is the closed set of clean-out trigger variants. The kind
// decides which accumulated measure trips a clean-out: elapsed run time,
// completed operation count, or produced units. Every switch over
// TriggerKind in this package is exhaustive.
type TriggerKind int

const (
	TriggerTime TriggerKind = iota
	TriggerOperationCount
	TriggerProductionUnits
)

// String returns the external name of the trigger kind.
func (k TriggerKind) String() string {
	switch k {
	case TriggerTime:
		return "TIME"
	case TriggerOperationCount:
		return "OPERATION_COUNT"
	case TriggerProductionUnits:
		return "PRODUCTION_UNITS"
	default:
		return "UNKNOWN"
	}
}

// TableKind maps the trigger variant onto its lookup-table kind.
func (k TriggerKind) TableKind() TableKind {
	switch k {
	case TriggerTime:
		return KindCleanoutTriggerTime
	case TriggerOperationCount:
		return KindCleanoutTriggerOperationCount
	case TriggerProductionUnits:
		return KindCleanoutTriggerProductionUnits
	default:
		panic(fmt.Sprintf("unknown trigger kind %d", k))
	}
}

// CleanoutTriggerTable resolves the clean-out that becomes due once a
// resource has run long enough, completed enough operations, or produced
// enough units since its last clean-out. The (previous, next) code pair
// still selects the row; the trigger threshold decides whether the
// clean-out applies at all.
type CleanoutTriggerTable struct {
	codeTable
	triggerKind TriggerKind

	// Threshold since last clean-out; interpretation depends on the kind.
	maxRunTicks        shared.Ticks
	maxOperationCount  int
	maxProductionUnits float64
}

// NewCleanoutTriggerTable creates an empty trigger table of the given kind.
func NewCleanoutTriggerTable(id int64, kind TriggerKind, name, description, wildcard string, hasWildcard, previousPrecedence bool) *CleanoutTriggerTable {
	return &CleanoutTriggerTable{
		codeTable:   newCodeTable(id, name, description, wildcard, hasWildcard, previousPrecedence),
		triggerKind: kind,
	}
}

// Kind returns the lookup-table kind for this trigger variant.
func (t *CleanoutTriggerTable) Kind() TableKind { return t.triggerKind.TableKind() }

// TriggerKind returns the trigger variant.
func (t *CleanoutTriggerTable) TriggerKind() TriggerKind { return t.triggerKind }

// SetThreshold sets the trip point for the table's own kind. Only the
// field matching the kind is meaningful; the others stay zero.
func (t *CleanoutTriggerTable) SetThreshold(runTicks shared.Ticks, operationCount int, productionUnits float64) {
	switch t.triggerKind {
	case TriggerTime:
		t.maxRunTicks = runTicks
	case TriggerOperationCount:
		t.maxOperationCount = operationCount
	case TriggerProductionUnits:
		t.maxProductionUnits = productionUnits
	}
}

// Threshold returns the raw threshold values.
func (t *CleanoutTriggerTable) Threshold() (shared.Ticks, int, float64) {
	return t.maxRunTicks, t.maxOperationCount, t.maxProductionUnits
}

// TriggerReached reports whether the accumulated measure since the last
// clean-out has tripped this table's threshold. A zero threshold never
// trips.
func (t *CleanoutTriggerTable) TriggerReached(runTicks shared.Ticks, operationCount int, productionUnits float64) bool {
	switch t.triggerKind {
	case TriggerTime:
		return t.maxRunTicks > 0 && runTicks >= t.maxRunTicks
	case TriggerOperationCount:
		return t.maxOperationCount > 0 && operationCount >= t.maxOperationCount
	case TriggerProductionUnits:
		return t.maxProductionUnits > 0 && productionUnits >= t.maxProductionUnits
	default:
		return false
	}
}

// ResolveCleanout returns the clean-out duration/cost/grade for the
// (previous, next) code pair. Trigger tables are unscoped.
func (t *CleanoutTriggerTable) ResolveCleanout(previousCode, nextCode string) CodeMatch {
	return t.Resolve(previousCode, nextCode, 0)
}

// Rebuild replaces configuration and the full row set via clear + re-add.
func (t *CleanoutTriggerTable) Rebuild(name, description, wildcard string, hasWildcard, previousPrecedence bool, rows []CodeMapping) {
	t.Reconfigure(name, description, wildcard, hasWildcard, previousPrecedence)
	t.Clear()
	for _, row := range rows {
		t.Add(row)
	}
}

// Copy produces a new table of the same trigger kind with the given id, a
// "Copy of" name, cloned rows, flags and thresholds, and no resource
// assignments.
func (t *CleanoutTriggerTable) Copy(newID int64) *CleanoutTriggerTable {
	return &CleanoutTriggerTable{
		codeTable:          t.copyCore(newID),
		triggerKind:        t.triggerKind,
		maxRunTicks:        t.maxRunTicks,
		maxOperationCount:  t.maxOperationCount,
		maxProductionUnits: t.maxProductionUnits,
	}
}

var _ Table = (*CleanoutTriggerTable)(nil)
