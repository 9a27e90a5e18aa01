package lookup

import (
	"github.com/planforge/aps-go/internal/domain/shared"
)

// CodeKey is the composite bucket key for a code mapping: the optional
// scope (attribute or item id, 0 = unscoped) plus the previous/next code
// pair. Bucket lookups hash on the full composite.
type CodeKey struct {
	Scope    int64
	Previous string
	Next     string
}

// CodeMapping is one (previous-code, next-code) -> (duration, cost, grade)
// row, optionally scoped by an attribute or item id. Rows are immutable
// once constructed; a table is rebuilt on update rather than mutated
// row-by-row.
type CodeMapping struct {
	previous string
	next     string
	scope    int64
	duration shared.Ticks
	cost     float64
	grade    int
}

// NewCodeMapping constructs an immutable row.
func NewCodeMapping(previous, next string, scope int64, duration shared.Ticks, cost float64, grade int) CodeMapping {
	return CodeMapping{
		previous: previous,
		next:     next,
		scope:    scope,
		duration: duration,
		cost:     cost,
		grade:    grade,
	}
}

func (m CodeMapping) Previous() string      { return m.previous }
func (m CodeMapping) Next() string          { return m.next }
func (m CodeMapping) Scope() int64          { return m.scope }
func (m CodeMapping) Duration() shared.Ticks { return m.duration }
func (m CodeMapping) Cost() float64         { return m.cost }
func (m CodeMapping) Grade() int            { return m.grade }

// Key returns the composite bucket key for this row.
func (m CodeMapping) Key() CodeKey {
	return CodeKey{Scope: m.scope, Previous: m.previous, Next: m.next}
}

// CodeMatch is the result of a table resolution. The zero value is the
// documented "no row matched" sentinel: zero duration, zero cost, zero
// grade. Absence of a match is a normal outcome, not an error.
type CodeMatch struct {
	Duration shared.Ticks
	Cost     float64
	Grade    int
	Found    bool
}

// NoMatch is the zero-duration/zero-cost sentinel returned when no row
// matches a query.
var NoMatch = CodeMatch{}

func matchOf(m CodeMapping) CodeMatch {
	return CodeMatch{Duration: m.duration, Cost: m.cost, Grade: m.grade, Found: true}
}
