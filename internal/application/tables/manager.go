package tables

import (
	"fmt"
	"strings"

	"github.com/planforge/aps-go/internal/domain/catalog"
	"github.com/planforge/aps-go/internal/domain/lookup"
	"github.com/planforge/aps-go/internal/domain/shared"
)

// Manager owns the full set of lookup tables of one kind. All five kinds
// share this one implementation; the only kind-specific behavior is table
// construction and copying, dispatched exhaustively on the closed kind
// set.
//
// Cross-reference maintenance: every assignment mutation goes through the
// manager so the resource->table slot and the table->assignment list never
// diverge. Deletion always unlinks first.
type Manager struct {
	kind    lookup.TableKind
	catalog catalog.Catalog
	ids     shared.IDGenerator

	tables map[int64]lookup.Table
}

// NewManager creates a manager for one table kind.
func NewManager(kind lookup.TableKind, cat catalog.Catalog, ids shared.IDGenerator) *Manager {
	return &Manager{
		kind:    kind,
		catalog: cat,
		ids:     ids,
		tables:  make(map[int64]lookup.Table),
	}
}

// Kind returns the table kind this manager owns.
func (m *Manager) Kind() lookup.TableKind { return m.kind }

// Count returns the number of owned tables.
func (m *Manager) Count() int { return len(m.tables) }

// Tables returns every owned table. Order is unspecified.
func (m *Manager) Tables() []lookup.Table {
	out := make([]lookup.Table, 0, len(m.tables))
	for _, t := range m.tables {
		out = append(out, t)
	}
	return out
}

// FindByID returns the table with the given id, or nil.
func (m *Manager) FindByID(id int64) lookup.Table {
	return m.tables[id]
}

// FindByName returns the table with the given name, case-insensitively,
// or nil.
func (m *Manager) FindByName(name string) lookup.Table {
	for _, t := range m.tables {
		if strings.EqualFold(t.Name(), name) {
			return t
		}
	}
	return nil
}

// Add registers a table. An id collision is an invariant violation: ids
// come from the shared generator and must never repeat.
func (m *Manager) Add(table lookup.Table) error {
	if table.Kind() != m.kind {
		return shared.NewDomainError(
			fmt.Sprintf("table %q is kind %s, manager owns %s", table.Name(), table.Kind(), m.kind))
	}
	if _, exists := m.tables[table.ID()]; exists {
		return shared.NewInvariantViolation("Manager.Add",
			fmt.Sprintf("duplicate table id %d for kind %s", table.ID(), m.kind))
	}
	m.tables[table.ID()] = table
	return nil
}

// Delete unlinks every resource reference and then removes the table.
// Unlink-first is mandatory: a deleted table must leave no dangling
// back-references on resources.
func (m *Manager) Delete(id int64) error {
	table, ok := m.tables[id]
	if !ok {
		return shared.NewDomainError(fmt.Sprintf("no %s table with id %d", m.kind, id))
	}
	m.unlinkAll(table)
	delete(m.tables, id)
	return nil
}

// DeleteAll deletes every owned table, unlinking each.
func (m *Manager) DeleteAll() {
	for id := range m.tables {
		_ = m.Delete(id)
	}
}

// Copy clones a table under a fresh id and "Copy of" name. The copy
// starts with no resource assignments even when the source had some.
func (m *Manager) Copy(id int64) (lookup.Table, error) {
	source, ok := m.tables[id]
	if !ok {
		return nil, shared.NewDomainError(fmt.Sprintf("no %s table with id %d", m.kind, id))
	}
	clone := copyTable(source, m.ids.NextID())
	if err := m.Add(clone); err != nil {
		return nil, err
	}
	return clone, nil
}

// AddFromDefinition constructs a table from a transmitted definition,
// registers it and links the resolvable resource references. Unresolvable
// references come back as validation errors; they do not prevent the
// table from being created.
func (m *Manager) AddFromDefinition(def TableDefinition) (lookup.Table, []error, error) {
	table := buildTable(m.kind, m.ids.NextID(), def)
	if err := m.Add(table); err != nil {
		return nil, nil, err
	}
	errs := m.linkResources(table, def.Resources)
	return table, errs, nil
}

// Link wires resource references onto an already-registered table. Used
// by persistence when restoring a scenario; feed-driven construction goes
// through AddFromDefinition instead.
func (m *Manager) Link(table lookup.Table, refs []ResourceRef) []error {
	return m.linkResources(table, refs)
}

// linkResources resolves external resource refs and wires both sides of
// the cross-reference.
func (m *Manager) linkResources(table lookup.Table, refs []ResourceRef) []error {
	var errs []error
	for _, ref := range refs {
		r := m.catalog.Resource(ref.Plant, ref.Department, ref.Resource)
		if r == nil {
			errs = append(errs, shared.NewValidationError("resource",
				fmt.Sprintf("table %q references unknown resource %s/%s/%s", table.Name(), ref.Plant, ref.Department, ref.Resource)))
			continue
		}
		// A resource holds one table per kind; replacing an occupant must
		// also drop the occupant's back-reference.
		if previous := r.Table(m.kind); previous != nil && previous.ID() != table.ID() {
			previous.Unassign(r.Key())
		}
		r.SetTable(table)
		table.Assign(r.Key())
	}
	return errs
}

// unlinkAll clears the resource slot on every assigned resource and drops
// the table's assignment list.
func (m *Manager) unlinkAll(table lookup.Table) {
	for _, key := range table.Assignments() {
		r := m.catalog.Resource(key.Plant, key.Department, key.Resource)
		if r == nil {
			continue
		}
		if current := r.Table(m.kind); current != nil && current.ID() == table.ID() {
			r.ClearTable(m.kind)
		}
	}
	table.ClearAssignments()
}

// BuildTable constructs a table of the given kind under a caller-supplied
// id. Persistence uses it to restore tables under their original ids;
// feed-driven construction goes through AddFromDefinition instead.
func BuildTable(kind lookup.TableKind, id int64, def TableDefinition) lookup.Table {
	return buildTable(kind, id, def)
}

// buildTable is the deserialization-by-tag dispatch: one exhaustive
// switch over the closed kind set.
func buildTable(kind lookup.TableKind, id int64, def TableDefinition) lookup.Table {
	switch kind {
	case lookup.KindAttributeCode:
		t := lookup.NewAttributeCodeTable(id, def.Name, def.Description, def.Wildcard, def.HasWildcard(), def.PreviousPrecedence)
		for _, row := range def.DomainRows() {
			t.Add(row)
		}
		return t
	case lookup.KindItemCleanout:
		t := lookup.NewItemCleanoutTable(id, def.Name, def.Description, def.Wildcard, def.HasWildcard(), def.PreviousPrecedence)
		for _, row := range def.DomainRows() {
			t.Add(row)
		}
		return t
	case lookup.KindCleanoutTriggerTime, lookup.KindCleanoutTriggerOperationCount, lookup.KindCleanoutTriggerProductionUnits:
		t := lookup.NewCleanoutTriggerTable(id, triggerKindOf(kind), def.Name, def.Description, def.Wildcard, def.HasWildcard(), def.PreviousPrecedence)
		t.SetThreshold(shared.Ticks(def.TriggerRunTicks), def.TriggerOperationCount, def.TriggerProductionUnits)
		for _, row := range def.DomainRows() {
			t.Add(row)
		}
		return t
	case lookup.KindSetupCode:
		t := lookup.NewSetupCodeTable(id, def.Name, def.Description, def.Wildcard, def.HasWildcard(), def.PreviousPrecedence)
		for _, row := range def.DomainRows() {
			t.Add(row)
		}
		return t
	default:
		panic(fmt.Sprintf("unknown table kind %d", kind))
	}
}

// copyTable dispatches the type-specific Copy on the closed kind set.
func copyTable(source lookup.Table, newID int64) lookup.Table {
	switch t := source.(type) {
	case *lookup.AttributeCodeTable:
		return t.Copy(newID)
	case *lookup.ItemCleanoutTable:
		return t.Copy(newID)
	case *lookup.CleanoutTriggerTable:
		return t.Copy(newID)
	case *lookup.SetupCodeTable:
		return t.Copy(newID)
	default:
		panic(fmt.Sprintf("unknown table type %T", source))
	}
}

func triggerKindOf(kind lookup.TableKind) lookup.TriggerKind {
	switch kind {
	case lookup.KindCleanoutTriggerTime:
		return lookup.TriggerTime
	case lookup.KindCleanoutTriggerOperationCount:
		return lookup.TriggerOperationCount
	case lookup.KindCleanoutTriggerProductionUnits:
		return lookup.TriggerProductionUnits
	default:
		panic(fmt.Sprintf("table kind %s is not a trigger kind", kind))
	}
}
