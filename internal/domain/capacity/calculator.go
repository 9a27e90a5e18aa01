package capacity

import (
	"math"

	"github.com/planforge/aps-go/internal/domain/activity"
	"github.com/planforge/aps-go/internal/domain/catalog"
	"github.com/planforge/aps-go/internal/domain/lookup"
	"github.com/planforge/aps-go/internal/domain/shared"
)

// SequenceContext describes what ran on the resource immediately before
// the candidate placement. The dispatch algorithm that walks the resource
// timeline supplies it; this core only consumes it for setup/clean-out
// lookups and trigger checks.
type SequenceContext struct {
	PreviousSetupCode     string
	PreviousAttributeCode string
	PreviousItemCode      string

	// Accumulated measures since the resource's last clean-out.
	RunTicksSinceCleanout   shared.Ticks
	OperationsSinceCleanout int
	UnitsSinceCleanout      float64
}

type infoCacheKey struct {
	activityID int64
	resource   shared.ResourceKey
}

// Calculator turns (activity, candidate resource, sequence context) into
// the spans the activity requires there. Resolved per-resource production
// info is cached for the remainder of the simulation pass; ResetCache must
// be called when a new pass starts.
type Calculator struct {
	minTicks  shared.Ticks
	infoCache map[infoCacheKey]*activity.ProductionInfo
}

// NewCalculator creates a calculator with the given minimum schedulable
// tick value (the overrun floor).
func NewCalculator(minTicks shared.Ticks) *Calculator {
	if minTicks <= 0 {
		minTicks = shared.MinSchedulableTicks
	}
	return &Calculator{
		minTicks:  minTicks,
		infoCache: make(map[infoCacheKey]*activity.ProductionInfo),
	}
}

// ResetCache drops all cached per-resource production info. Call at the
// start of every simulation pass.
func (c *Calculator) ResetCache() {
	c.infoCache = make(map[infoCacheKey]*activity.ProductionInfo)
}

// ResolveProductionInfo derives the resource-specific production info for
// an activity: clone the operation's base info, apply the resource's
// efficiency divisors, then any matching product-rule override (per-field
// opt-in), then the volume-batch special case. The result is cached for
// the remainder of the pass.
func (c *Calculator) ResolveProductionInfo(a *activity.InternalActivity, r *catalog.Resource) *activity.ProductionInfo {
	key := infoCacheKey{activityID: a.ID(), resource: r.Key()}
	if cached, ok := c.infoCache[key]; ok {
		return cached
	}

	info := a.Operation().ProductionInfo().Clone()

	// Efficiency multipliers are divisors: a resource running at 2.0
	// cycle efficiency halves the cycle time.
	info.SetCycleTicks(shared.Ticks(math.Ceil(float64(info.CycleTicks()) / r.CycleEfficiency())))
	info.SetSetupTicks(shared.Ticks(math.Ceil(float64(info.SetupTicks()) / r.SetupEfficiency())))

	// Volume-batch resources dictate quantity-per-cycle and disable
	// manual overrides.
	allowQuantityOverride := !r.IsVolumeBatch()
	for _, rule := range a.Operation().ProductRules() {
		if rule.Matches(r.Key()) {
			rule.ApplyTo(info, allowQuantityOverride)
		}
	}
	if r.IsVolumeBatch() {
		info.SetQuantityPerCycle(r.BatchQuantityPerCycle())
	}

	c.infoCache[key] = info
	return info
}

// CalculateProcessingTimeSpan computes the processing block the activity
// still needs on the resource, the number of cycles required, and the
// finish quantity being planned.
func (c *Calculator) CalculateProcessingTimeSpan(a *activity.InternalActivity, r *catalog.Resource) (RequiredSpan, int64, float64, error) {
	if a.Status().AtOrPast(activity.StatusPostProcessing) {
		return ZeroSpan, 0, 0, nil
	}

	info := c.ResolveProductionInfo(a, r)

	finishQty := a.RequiredFinishQty()
	if info.UseExpectedFinishQty() {
		finishQty = info.ExpectedFinishQty()
	}

	qtyPerCycle := info.QuantityPerCycle()
	if qtyPerCycle <= 0 {
		return ZeroSpan, 0, 0, NewZeroQuantityPerCycleError(a.ID(), r.Key())
	}

	var duration shared.Ticks
	var cycles int64

	if info.TimeBasedReporting() {
		qty := applyPlanningScrap(finishQty, info.PlanningScrapPercent())
		if qty < 0 {
			qty = 0
		}
		cycles = int64(math.Ceil(qty / qtyPerCycle))
		duration = shared.Ticks(cycles)*info.CycleTicks() - a.ReportedRunTicks()
	} else {
		remaining := finishQty - a.ReportedGoodQty()
		if info.SubtractReportedScrap() {
			remaining -= a.ReportedScrapQty()
		}
		if remaining < 0 {
			remaining = 0
		}
		remaining = applyPlanningScrap(remaining, info.PlanningScrapPercent())
		cycles = int64(math.Ceil(remaining / qtyPerCycle))
		duration = shared.Ticks(cycles) * info.CycleTicks()
	}

	span := RequiredSpan{Ticks: duration}
	if duration <= 0 {
		if a.Status() == activity.StatusRunning || a.Status() == activity.StatusSetupStarted {
			span.Ticks = c.minTicks
			span.Overrun = true
		} else {
			span.Ticks = 0
		}
	}
	span.CapacityCost = float64(span.Ticks) * r.ProcessingCostPerTick()
	return span, cycles, finishQty, nil
}

// CalculateSetupSpan computes the setup block required before processing,
// combining the operation's own setup time with the sequence-dependent
// setup resolved from the resource's attribute code table (or the legacy
// setup code table when no attribute table is assigned).
func (c *Calculator) CalculateSetupSpan(a *activity.InternalActivity, r *catalog.Resource, seq SequenceContext) SetupSpan {
	info := c.ResolveProductionInfo(a, r)

	match := lookup.NoMatch
	if table := r.AttributeCodeTable(); table != nil {
		match = table.ResolveSetup(seq.PreviousAttributeCode, info.AttributeCode(), info.AttributeID())
	} else if table := r.SetupCodeTable(); table != nil {
		match = table.ResolveSetup(seq.PreviousSetupCode, info.SetupCode())
	}

	gross := info.SetupTicks() + match.Duration
	net := gross - a.ReportedSetupTicks()

	span := SetupSpan{GrossTicks: gross, SequenceCost: match.Cost}
	span.Ticks = net
	if net <= 0 {
		if a.Status() == activity.StatusSetupStarted {
			span.Ticks = c.minTicks
			span.Overrun = true
		} else {
			span.Ticks = 0
		}
	}
	span.ResourceCost = float64(span.Ticks) * r.SetupCostPerTick()
	span.ProductionCost = info.SetupCost()
	span.CapacityCost = span.TotalCost()
	return span
}

// CalculateCleanoutSpan computes the clean-out block required before the
// activity can start: the item-sequence clean-out merged with every
// tripped clean-out trigger. keepLongest controls the grade-tie rule in
// the merge.
func (c *Calculator) CalculateCleanoutSpan(a *activity.InternalActivity, r *catalog.Resource, seq SequenceContext, keepLongest bool) CleanoutSpan {
	info := c.ResolveProductionInfo(a, r)

	span := CleanoutSpan{}
	if table := r.ItemCleanoutTable(); table != nil {
		if m := table.ResolveCleanout(seq.PreviousItemCode, info.ItemCode(), info.ItemID()); m.Found {
			span = cleanoutSpanFromMatch(m)
		}
	}

	for _, kind := range []lookup.TriggerKind{lookup.TriggerTime, lookup.TriggerOperationCount, lookup.TriggerProductionUnits} {
		table := r.CleanoutTriggerTable(kind)
		if table == nil {
			continue
		}
		if !table.TriggerReached(seq.RunTicksSinceCleanout, seq.OperationsSinceCleanout, seq.UnitsSinceCleanout) {
			continue
		}
		if m := table.ResolveCleanout(seq.PreviousItemCode, info.ItemCode()); m.Found {
			span = span.Merge(cleanoutSpanFromMatch(m), keepLongest)
		}
	}

	if span.Ticks > 0 {
		span.ResourceCost = float64(span.Ticks) * r.CleanoutCostPerTick()
		span.ProductionCost = info.CleanoutCost()
		span.CapacityCost = span.TotalCost()
	}
	return span
}

// CalculatePostProcessingSpan computes the remaining post-processing
// block.
func (c *Calculator) CalculatePostProcessingSpan(a *activity.InternalActivity, r *catalog.Resource) RequiredSpan {
	if a.Status() == activity.StatusComplete {
		return ZeroSpan
	}
	info := c.ResolveProductionInfo(a, r)

	net := info.PostProcessingTicks() - a.ReportedPostTicks()
	span := RequiredSpan{Ticks: net}
	if net <= 0 {
		if a.Status() == activity.StatusPostProcessing {
			span.Ticks = c.minTicks
			span.Overrun = true
		} else {
			span.Ticks = 0
		}
	}
	span.CapacityCost = float64(span.Ticks) * r.ProcessingCostPerTick()
	return span
}

// CalculateStorageSpan computes the storage dwell after processing.
// Storage occupies timeline but no capacity cost.
func (c *Calculator) CalculateStorageSpan(a *activity.InternalActivity, r *catalog.Resource) RequiredSpan {
	if a.Status() == activity.StatusComplete {
		return ZeroSpan
	}
	info := c.ResolveProductionInfo(a, r)
	if info.StorageTicks() <= 0 {
		return ZeroSpan
	}
	return RequiredSpan{Ticks: info.StorageTicks()}
}

func cleanoutSpanFromMatch(m lookup.CodeMatch) CleanoutSpan {
	span := CleanoutSpan{Grade: m.Grade, SequenceCost: m.Cost}
	span.Ticks = m.Duration
	return span
}

func applyPlanningScrap(qty, scrapPercent float64) float64 {
	if scrapPercent <= 0 {
		return qty
	}
	return qty * (1 + scrapPercent/100)
}
