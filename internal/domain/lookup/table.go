package lookup

import (
	"fmt"

	"github.com/planforge/aps-go/internal/domain/shared"
)

// TableKind identifies the concrete lookup-table variant. A resource holds
// at most one table per kind; managers own the full set of one kind.
type TableKind int

const (
	KindAttributeCode TableKind = iota
	KindItemCleanout
	KindCleanoutTriggerTime
	KindCleanoutTriggerOperationCount
	KindCleanoutTriggerProductionUnits
	KindSetupCode
)

// String returns the external name of the kind, used in change records and
// persistence tags.
func (k TableKind) String() string {
	switch k {
	case KindAttributeCode:
		return "ATTRIBUTE_CODE"
	case KindItemCleanout:
		return "ITEM_CLEANOUT"
	case KindCleanoutTriggerTime:
		return "CLEANOUT_TRIGGER_TIME"
	case KindCleanoutTriggerOperationCount:
		return "CLEANOUT_TRIGGER_OPERATION_COUNT"
	case KindCleanoutTriggerProductionUnits:
		return "CLEANOUT_TRIGGER_PRODUCTION_UNITS"
	case KindSetupCode:
		return "SETUP_CODE"
	default:
		return "UNKNOWN"
	}
}

// ParseTableKind maps an external kind name back to its value.
func ParseTableKind(name string) (TableKind, error) {
	switch name {
	case "ATTRIBUTE_CODE":
		return KindAttributeCode, nil
	case "ITEM_CLEANOUT":
		return KindItemCleanout, nil
	case "CLEANOUT_TRIGGER_TIME":
		return KindCleanoutTriggerTime, nil
	case "CLEANOUT_TRIGGER_OPERATION_COUNT":
		return KindCleanoutTriggerOperationCount, nil
	case "CLEANOUT_TRIGGER_PRODUCTION_UNITS":
		return KindCleanoutTriggerProductionUnits, nil
	case "SETUP_CODE":
		return KindSetupCode, nil
	default:
		return 0, fmt.Errorf("unknown table kind %q", name)
	}
}

// AllTableKinds returns every kind, in declaration order.
func AllTableKinds() []TableKind {
	return []TableKind{
		KindAttributeCode,
		KindItemCleanout,
		KindCleanoutTriggerTime,
		KindCleanoutTriggerOperationCount,
		KindCleanoutTriggerProductionUnits,
		KindSetupCode,
	}
}

// Table is the behavior shared by every lookup-table variant. Managers and
// resource table slots hold tables through this interface; kind-specific
// behavior lives behind the closed set of concrete types.
type Table interface {
	ID() int64
	Name() string
	Description() string
	Kind() TableKind

	// Rows returns every row across all buckets. Order is unspecified.
	Rows() []CodeMapping

	// Resource assignment bookkeeping. Mutation must go through the owning
	// manager so the resource->table and table->resource views never
	// diverge.
	Assignments() []shared.ResourceKey
	Assign(key shared.ResourceKey)
	Unassign(key shared.ResourceKey)
	ClearAssignments()
}

// codeTable is the shared core of every lookup-table variant: three
// disjoint row buckets plus wildcard/precedence configuration and the
// resource assignment list.
//
// Bucket placement (decided once, at insertion):
//   - no wildcard configured         -> exact bucket, always
//   - previous == wildcard token     -> wildcard-on-previous bucket
//   - next == wildcard token         -> wildcard-on-next bucket
//   - otherwise                      -> exact bucket
//
// A fully wildcarded (wildcard, wildcard) row lands in the
// wildcard-on-previous bucket by the rule above.
type codeTable struct {
	id          int64
	name        string
	description string

	wildcard           string
	hasWildcard        bool
	previousPrecedence bool

	exact    map[CodeKey]CodeMapping
	wildPrev map[CodeKey]CodeMapping
	wildNext map[CodeKey]CodeMapping

	assignments []shared.ResourceKey
}

func newCodeTable(id int64, name, description, wildcard string, hasWildcard, previousPrecedence bool) codeTable {
	return codeTable{
		id:                 id,
		name:               name,
		description:        description,
		wildcard:           wildcard,
		hasWildcard:        hasWildcard,
		previousPrecedence: previousPrecedence,
		exact:              make(map[CodeKey]CodeMapping),
		wildPrev:           make(map[CodeKey]CodeMapping),
		wildNext:           make(map[CodeKey]CodeMapping),
	}
}

func (t *codeTable) ID() int64            { return t.id }
func (t *codeTable) Name() string         { return t.name }
func (t *codeTable) Description() string  { return t.description }
func (t *codeTable) Wildcard() string     { return t.wildcard }
func (t *codeTable) HasWildcard() bool    { return t.hasWildcard }
func (t *codeTable) PreviousPrecedence() bool { return t.previousPrecedence }

// Add places a row into exactly one bucket. Insertion is add-if-absent:
// the first row for a key wins and later duplicates are ignored. That is
// the contract, not an error.
func (t *codeTable) Add(m CodeMapping) {
	bucket := t.exact
	if t.hasWildcard {
		switch {
		case m.previous == t.wildcard:
			bucket = t.wildPrev
		case m.next == t.wildcard:
			bucket = t.wildNext
		}
	}
	key := m.Key()
	if _, exists := bucket[key]; exists {
		return
	}
	bucket[key] = m
}

// Resolve looks up the (previous, next) pair under the given scope.
//
// Order is load-bearing:
//  1. exact match always wins, regardless of precedence
//  2. no wildcard configured -> NoMatch
//  3. previous precedence: (previous, wildcard) then (wildcard, next)
//  4. next precedence: (wildcard, next) then (previous, wildcard)
//  5. fully wildcarded (wildcard, wildcard) fallback
func (t *codeTable) Resolve(previous, next string, scope int64) CodeMatch {
	if m, ok := t.exact[CodeKey{Scope: scope, Previous: previous, Next: next}]; ok {
		return matchOf(m)
	}
	if !t.hasWildcard {
		return NoMatch
	}

	prevSide := CodeKey{Scope: scope, Previous: t.wildcard, Next: next}
	nextSide := CodeKey{Scope: scope, Previous: previous, Next: t.wildcard}

	if t.previousPrecedence {
		if m, ok := t.wildNext[nextSide]; ok {
			return matchOf(m)
		}
		if m, ok := t.wildPrev[prevSide]; ok {
			return matchOf(m)
		}
	} else {
		if m, ok := t.wildPrev[prevSide]; ok {
			return matchOf(m)
		}
		if m, ok := t.wildNext[nextSide]; ok {
			return matchOf(m)
		}
	}

	if m, ok := t.wildPrev[CodeKey{Scope: scope, Previous: t.wildcard, Next: t.wildcard}]; ok {
		return matchOf(m)
	}
	return NoMatch
}

// Clear drops every row from all three buckets. Configuration and
// assignments are untouched; Update rebuilds rows through Clear + Add.
func (t *codeTable) Clear() {
	t.exact = make(map[CodeKey]CodeMapping)
	t.wildPrev = make(map[CodeKey]CodeMapping)
	t.wildNext = make(map[CodeKey]CodeMapping)
}

// Rows returns every row across all buckets.
func (t *codeTable) Rows() []CodeMapping {
	rows := make([]CodeMapping, 0, len(t.exact)+len(t.wildPrev)+len(t.wildNext))
	for _, m := range t.exact {
		rows = append(rows, m)
	}
	for _, m := range t.wildPrev {
		rows = append(rows, m)
	}
	for _, m := range t.wildNext {
		rows = append(rows, m)
	}
	return rows
}

// RowCount returns the total number of rows across all buckets.
func (t *codeTable) RowCount() int {
	return len(t.exact) + len(t.wildPrev) + len(t.wildNext)
}

// Reconfigure replaces the wildcard/precedence configuration. Callers must
// rebuild rows afterwards; bucket placement depends on the wildcard token.
func (t *codeTable) Reconfigure(name, description, wildcard string, hasWildcard, previousPrecedence bool) {
	t.name = name
	t.description = description
	t.wildcard = wildcard
	t.hasWildcard = hasWildcard
	t.previousPrecedence = previousPrecedence
}

// Assignment bookkeeping

func (t *codeTable) Assignments() []shared.ResourceKey {
	out := make([]shared.ResourceKey, len(t.assignments))
	copy(out, t.assignments)
	return out
}

func (t *codeTable) Assign(key shared.ResourceKey) {
	for _, existing := range t.assignments {
		if existing == key {
			return
		}
	}
	t.assignments = append(t.assignments, key)
}

func (t *codeTable) Unassign(key shared.ResourceKey) {
	for i, existing := range t.assignments {
		if existing == key {
			t.assignments = append(t.assignments[:i], t.assignments[i+1:]...)
			return
		}
	}
}

func (t *codeTable) ClearAssignments() {
	t.assignments = nil
}

// copyCore clones configuration and rows into a fresh core with a new id
// and a "Copy of" name. Assignments are deliberately not copied: a copied
// table starts unassigned.
func (t *codeTable) copyCore(newID int64) codeTable {
	clone := newCodeTable(newID, "Copy of "+t.name, t.description, t.wildcard, t.hasWildcard, t.previousPrecedence)
	for k, m := range t.exact {
		clone.exact[k] = m
	}
	for k, m := range t.wildPrev {
		clone.wildPrev[k] = m
	}
	for k, m := range t.wildNext {
		clone.wildNext[k] = m
	}
	return clone
}
