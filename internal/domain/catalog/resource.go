package catalog

import (
	"github.com/planforge/aps-go/internal/domain/lookup"
	"github.com/planforge/aps-go/internal/domain/shared"
)

// Resource is a schedulable capacity unit in the plant catalog. The
// catalog is read-only from the engine's point of view: the scheduler
// enumerates resources, the span calculator reads their timing data, and
// the table managers maintain the per-kind lookup-table slots.
//
// Invariant: a resource holds at most one table per table kind, and the
// table's assignment list always mirrors the slot (mutation goes through
// the owning manager).
type Resource struct {
	key shared.ResourceKey

	// Timing data consumed by the span calculator.
	cycleTicks       shared.Ticks // duration of one production cycle
	quantityPerCycle float64      // units produced per cycle
	cycleEfficiency  float64      // cycle time divisor, 1.0 = nominal
	setupEfficiency  float64      // setup time divisor, 1.0 = nominal

	// Volume-batch resources dictate quantity-per-cycle themselves and
	// disable manual quantity-per-cycle overrides.
	volumeBatch           bool
	batchQuantityPerCycle float64

	// Capacity cost per tick for each phase, used for span costing.
	processingCostPerTick float64
	setupCostPerTick      float64
	cleanoutCostPerTick   float64

	// One lookup-table slot per table kind.
	tables map[lookup.TableKind]lookup.Table
}

// NewResource creates a resource with nominal efficiency and empty table
// slots.
func NewResource(key shared.ResourceKey, cycleTicks shared.Ticks, quantityPerCycle float64) *Resource {
	return &Resource{
		key:              key,
		cycleTicks:       cycleTicks,
		quantityPerCycle: quantityPerCycle,
		cycleEfficiency:  1.0,
		setupEfficiency:  1.0,
		tables:           make(map[lookup.TableKind]lookup.Table),
	}
}

func (r *Resource) Key() shared.ResourceKey    { return r.key }
func (r *Resource) CycleTicks() shared.Ticks   { return r.cycleTicks }
func (r *Resource) QuantityPerCycle() float64  { return r.quantityPerCycle }
func (r *Resource) CycleEfficiency() float64   { return r.cycleEfficiency }
func (r *Resource) SetupEfficiency() float64   { return r.setupEfficiency }
func (r *Resource) IsVolumeBatch() bool        { return r.volumeBatch }
func (r *Resource) BatchQuantityPerCycle() float64 { return r.batchQuantityPerCycle }
func (r *Resource) ProcessingCostPerTick() float64 { return r.processingCostPerTick }
func (r *Resource) SetupCostPerTick() float64      { return r.setupCostPerTick }
func (r *Resource) CleanoutCostPerTick() float64   { return r.cleanoutCostPerTick }

// SetEfficiency sets the cycle and setup efficiency divisors. Values <= 0
// are coerced to nominal; efficiency is a divisor and must never zero out
// a cycle time.
func (r *Resource) SetEfficiency(cycle, setup float64) {
	if cycle <= 0 {
		cycle = 1.0
	}
	if setup <= 0 {
		setup = 1.0
	}
	r.cycleEfficiency = cycle
	r.setupEfficiency = setup
}

// SetVolumeBatch marks the resource as a volume-batch resource with the
// quantity-per-cycle it dictates.
func (r *Resource) SetVolumeBatch(quantityPerCycle float64) {
	r.volumeBatch = true
	r.batchQuantityPerCycle = quantityPerCycle
}

// SetPhaseCosts sets the per-tick capacity cost for each phase.
func (r *Resource) SetPhaseCosts(processing, setup, cleanout float64) {
	r.processingCostPerTick = processing
	r.setupCostPerTick = setup
	r.cleanoutCostPerTick = cleanout
}

// Table slots

// SetTable installs a table into the slot for its kind, replacing any
// previous occupant. Called by the owning manager only.
func (r *Resource) SetTable(table lookup.Table) {
	r.tables[table.Kind()] = table
}

// ClearTable empties the slot for the given kind.
func (r *Resource) ClearTable(kind lookup.TableKind) {
	delete(r.tables, kind)
}

// Table returns the table in the slot for the given kind, or nil.
func (r *Resource) Table(kind lookup.TableKind) lookup.Table {
	return r.tables[kind]
}

// AttributeCodeTable returns the attribute code table slot, or nil.
func (r *Resource) AttributeCodeTable() *lookup.AttributeCodeTable {
	if t, ok := r.tables[lookup.KindAttributeCode].(*lookup.AttributeCodeTable); ok {
		return t
	}
	return nil
}

// ItemCleanoutTable returns the item clean-out table slot, or nil.
func (r *Resource) ItemCleanoutTable() *lookup.ItemCleanoutTable {
	if t, ok := r.tables[lookup.KindItemCleanout].(*lookup.ItemCleanoutTable); ok {
		return t
	}
	return nil
}

// CleanoutTriggerTable returns the trigger table slot for the given
// variant, or nil.
func (r *Resource) CleanoutTriggerTable(kind lookup.TriggerKind) *lookup.CleanoutTriggerTable {
	if t, ok := r.tables[kind.TableKind()].(*lookup.CleanoutTriggerTable); ok {
		return t
	}
	return nil
}

// SetupCodeTable returns the legacy setup table slot, or nil.
func (r *Resource) SetupCodeTable() *lookup.SetupCodeTable {
	if t, ok := r.tables[lookup.KindSetupCode].(*lookup.SetupCodeTable); ok {
		return t
	}
	return nil
}
