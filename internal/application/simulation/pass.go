package simulation

import (
	"github.com/planforge/aps-go/internal/domain/activity"
	"github.com/planforge/aps-go/internal/domain/capacity"
	"github.com/planforge/aps-go/internal/domain/shared"
)

// Pass drives one simulation pass over a scenario's activities. It exists
// to enforce two orderings the domain objects cannot enforce themselves:
//
//   - every activity's transient state is reset before the first
//     eligibility check on any activity (partial resets produce
//     inconsistent release decisions), and
//   - the reanchor-around-simulation protocol wraps the whole pass.
//
// A pass is single-threaded and runs to completion; cancellation mid-pass
// is not supported - a scenario copy is discarded instead.
type Pass struct {
	clock      shared.Clock
	calc       *capacity.Calculator
	activities []*activity.InternalActivity

	begun bool
}

// NewPass creates a pass over the given activities.
func NewPass(clock shared.Clock, calc *capacity.Calculator, activities []*activity.InternalActivity) *Pass {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Pass{
		clock:      clock,
		calc:       calc,
		activities: activities,
	}
}

// Activities returns the activities in this pass.
func (p *Pass) Activities() []*activity.InternalActivity {
	return p.activities
}

// Begin resets every activity's transient state, captures anchoring for
// the reanchor protocol and invalidates the span calculator's per-pass
// cache. No eligibility check is valid before Begin completes.
func (p *Pass) Begin() {
	for _, a := range p.activities {
		a.ResetTransientState()
	}
	for _, a := range p.activities {
		a.ReanchorSetup()
	}
	if p.calc != nil {
		p.calc.ResetCache()
	}
	p.begun = true
}

// Eligible evaluates release gating for one activity. Calling it before
// Begin is an invariant violation: the reset-before-eligibility ordering
// would be broken.
func (p *Pass) Eligible(a *activity.InternalActivity) (bool, error) {
	if !p.begun {
		return false, shared.NewInvariantViolation("Pass.Eligible",
			"eligibility checked before the transient state reset completed")
	}
	return a.Released(), nil
}

// EligibleActivities returns every currently-released activity.
func (p *Pass) EligibleActivities() ([]*activity.InternalActivity, error) {
	var out []*activity.InternalActivity
	for _, a := range p.activities {
		ok, err := p.Eligible(a)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, a)
		}
	}
	return out, nil
}

// Finish restores anchoring on every activity that was anchored before
// the pass. Invariant violations (an anchored activity ending the pass
// unscheduled) are collected and returned; the caller decides whether to
// discard the scenario copy.
func (p *Pass) Finish() []error {
	var errs []error
	for _, a := range p.activities {
		if err := a.Reanchor(); err != nil {
			errs = append(errs, err)
		}
	}
	p.begun = false
	return errs
}
