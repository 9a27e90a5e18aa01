package activity

import "github.com/planforge/aps-go/internal/domain/shared"

// ProductionInfo is the timing and quantity profile an operation plans
// with. The operation owns a base ProductionInfo; the span calculator
// clones it per eligible resource and layers resource efficiency, product
// rules and batch overrides on the clone.
type ProductionInfo struct {
	cycleTicks          shared.Ticks
	quantityPerCycle    float64
	setupTicks          shared.Ticks
	cleanoutTicks       shared.Ticks
	postProcessingTicks shared.Ticks
	storageTicks        shared.Ticks

	planningScrapPercent  float64 // 0..100, inflates the quantity to produce
	timeBasedReporting    bool    // progress reported as time, not quantity
	useExpectedFinishQty  bool    // plan with expected instead of required qty
	subtractReportedScrap bool    // scrap counts toward the produced total
	expectedFinishQty     float64

	// Operation-level flat costs layered onto the span cost tiers.
	setupCost    float64
	cleanoutCost float64

	// Sequence matching inputs for setup/clean-out lookups.
	setupCode     string
	attributeCode string
	attributeID   int64
	itemCode      string
	itemID        int64
}

// NewProductionInfo creates a ProductionInfo with the mandatory timing data.
func NewProductionInfo(cycleTicks shared.Ticks, quantityPerCycle float64) *ProductionInfo {
	return &ProductionInfo{
		cycleTicks:       cycleTicks,
		quantityPerCycle: quantityPerCycle,
	}
}

func (p *ProductionInfo) CycleTicks() shared.Ticks          { return p.cycleTicks }
func (p *ProductionInfo) QuantityPerCycle() float64         { return p.quantityPerCycle }
func (p *ProductionInfo) SetupTicks() shared.Ticks          { return p.setupTicks }
func (p *ProductionInfo) CleanoutTicks() shared.Ticks       { return p.cleanoutTicks }
func (p *ProductionInfo) PostProcessingTicks() shared.Ticks { return p.postProcessingTicks }
func (p *ProductionInfo) StorageTicks() shared.Ticks        { return p.storageTicks }
func (p *ProductionInfo) PlanningScrapPercent() float64     { return p.planningScrapPercent }
func (p *ProductionInfo) TimeBasedReporting() bool          { return p.timeBasedReporting }
func (p *ProductionInfo) UseExpectedFinishQty() bool        { return p.useExpectedFinishQty }
func (p *ProductionInfo) SubtractReportedScrap() bool       { return p.subtractReportedScrap }
func (p *ProductionInfo) ExpectedFinishQty() float64        { return p.expectedFinishQty }
func (p *ProductionInfo) SetupCode() string                 { return p.setupCode }
func (p *ProductionInfo) AttributeCode() string             { return p.attributeCode }
func (p *ProductionInfo) AttributeID() int64                { return p.attributeID }
func (p *ProductionInfo) ItemCode() string                  { return p.itemCode }
func (p *ProductionInfo) ItemID() int64                     { return p.itemID }
func (p *ProductionInfo) SetupCost() float64                { return p.setupCost }
func (p *ProductionInfo) CleanoutCost() float64             { return p.cleanoutCost }

// Setters used by feed construction and tests.

func (p *ProductionInfo) SetPhaseTicks(setup, cleanout, postProcessing, storage shared.Ticks) {
	p.setupTicks = setup
	p.cleanoutTicks = cleanout
	p.postProcessingTicks = postProcessing
	p.storageTicks = storage
}

func (p *ProductionInfo) SetPlanningScrapPercent(pct float64) { p.planningScrapPercent = pct }
func (p *ProductionInfo) SetTimeBasedReporting(v bool)        { p.timeBasedReporting = v }
func (p *ProductionInfo) SetSubtractReportedScrap(v bool)     { p.subtractReportedScrap = v }

func (p *ProductionInfo) SetExpectedFinishQty(qty float64) {
	p.expectedFinishQty = qty
	p.useExpectedFinishQty = true
}

func (p *ProductionInfo) SetQuantityPerCycle(qty float64) { p.quantityPerCycle = qty }
func (p *ProductionInfo) SetCycleTicks(t shared.Ticks)    { p.cycleTicks = t }
func (p *ProductionInfo) SetSetupTicks(t shared.Ticks)    { p.setupTicks = t }

func (p *ProductionInfo) SetOperationCosts(setup, cleanout float64) {
	p.setupCost = setup
	p.cleanoutCost = cleanout
}

func (p *ProductionInfo) SetSequenceCodes(setupCode, attributeCode string, attributeID int64, itemCode string, itemID int64) {
	p.setupCode = setupCode
	p.attributeCode = attributeCode
	p.attributeID = attributeID
	p.itemCode = itemCode
	p.itemID = itemID
}

// Clone returns an independent copy.
func (p *ProductionInfo) Clone() *ProductionInfo {
	clone := *p
	return &clone
}

// ProductRule is a per-resource override of selected ProductionInfo
// fields. A rule only overrides a field when its corresponding use-flag is
// set; unset fields keep the cloned base value.
type ProductRule struct {
	// Match scope. Empty parts match anything.
	plant      string
	department string
	resource   string

	useCycleTicks       bool
	cycleTicks          shared.Ticks
	useQuantityPerCycle bool
	quantityPerCycle    float64
	useSetupTicks       bool
	setupTicks          shared.Ticks
	usePlanningScrap    bool
	planningScrapPct    float64
}

// NewProductRule creates a rule scoped to the given resource key parts.
// Empty parts act as wildcards.
func NewProductRule(plant, department, resource string) *ProductRule {
	return &ProductRule{plant: plant, department: department, resource: resource}
}

func (r *ProductRule) OverrideCycleTicks(t shared.Ticks) {
	r.useCycleTicks = true
	r.cycleTicks = t
}

func (r *ProductRule) OverrideQuantityPerCycle(qty float64) {
	r.useQuantityPerCycle = true
	r.quantityPerCycle = qty
}

func (r *ProductRule) OverrideSetupTicks(t shared.Ticks) {
	r.useSetupTicks = true
	r.setupTicks = t
}

func (r *ProductRule) OverridePlanningScrapPercent(pct float64) {
	r.usePlanningScrap = true
	r.planningScrapPct = pct
}

// Matches reports whether the rule applies to the given resource key.
func (r *ProductRule) Matches(key shared.ResourceKey) bool {
	if r.plant != "" && r.plant != key.Plant {
		return false
	}
	if r.department != "" && r.department != key.Department {
		return false
	}
	if r.resource != "" && r.resource != key.Resource {
		return false
	}
	return true
}

// ApplyTo writes the opted-in fields onto info. allowQuantityOverride is
// false for volume-batch resources, which dictate quantity-per-cycle
// themselves.
func (r *ProductRule) ApplyTo(info *ProductionInfo, allowQuantityOverride bool) {
	if r.useCycleTicks {
		info.cycleTicks = r.cycleTicks
	}
	if r.useQuantityPerCycle && allowQuantityOverride {
		info.quantityPerCycle = r.quantityPerCycle
	}
	if r.useSetupTicks {
		info.setupTicks = r.setupTicks
	}
	if r.usePlanningScrap {
		info.planningScrapPercent = r.planningScrapPct
	}
}
