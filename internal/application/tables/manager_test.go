package tables_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogAdapter "github.com/planforge/aps-go/internal/adapters/catalog"
	"github.com/planforge/aps-go/internal/application/tables"
	"github.com/planforge/aps-go/internal/domain/catalog"
	"github.com/planforge/aps-go/internal/domain/lookup"
	"github.com/planforge/aps-go/internal/domain/shared"
)

func newTestCatalog(names ...string) *catalogAdapter.MemoryCatalog {
	cat := catalogAdapter.NewMemoryCatalog()
	for _, name := range names {
		key := shared.ResourceKey{Plant: "P1", Department: "D1", Resource: name}
		cat.Register(catalog.NewResource(key, 10, 1))
	}
	return cat
}

func newManager(cat catalog.Catalog, kind lookup.TableKind) *tables.Manager {
	return tables.NewManager(kind, cat, shared.NewSequentialIDGenerator(1))
}

func ref(name string) tables.ResourceRef {
	return tables.ResourceRef{Plant: "P1", Department: "D1", Resource: name}
}

func TestManager_AddRejectsKindMismatch(t *testing.T) {
	// Arrange
	m := newManager(newTestCatalog(), lookup.KindAttributeCode)
	wrong := lookup.NewItemCleanoutTable(99, "Items", "", "", false, false)

	// Act
	err := m.Add(wrong)

	// Assert
	require.Error(t, err)
	assert.Equal(t, 0, m.Count())
}

func TestManager_AddFromDefinitionLinksResources(t *testing.T) {
	// Arrange
	cat := newTestCatalog("R1", "R2")
	m := newManager(cat, lookup.KindAttributeCode)

	// Act
	table, linkErrs, err := m.AddFromDefinition(tables.TableDefinition{
		Name:      "Colors",
		Rows:      []tables.RowDefinition{{Previous: "RED", Next: "BLUE", DurationTicks: 60}},
		Resources: []tables.ResourceRef{ref("R1"), ref("R2")},
	})

	// Assert
	require.NoError(t, err)
	assert.Empty(t, linkErrs)
	assert.Len(t, table.Assignments(), 2)

	r1 := cat.Resource("P1", "D1", "R1")
	require.NotNil(t, r1.AttributeCodeTable())
	assert.Equal(t, table.ID(), r1.AttributeCodeTable().ID())
}

func TestManager_AddFromDefinitionReportsUnknownResources(t *testing.T) {
	// Arrange
	m := newManager(newTestCatalog("R1"), lookup.KindAttributeCode)

	// Act
	table, linkErrs, err := m.AddFromDefinition(tables.TableDefinition{
		Name:      "Colors",
		Resources: []tables.ResourceRef{ref("R1"), ref("MISSING")},
	})

	// Assert - the table exists, the bad ref is a validation error
	require.NoError(t, err)
	require.Len(t, linkErrs, 1)
	assert.Len(t, table.Assignments(), 1)
}

func TestManager_LinkReplacesPreviousOccupant(t *testing.T) {
	// Arrange - two tables fighting over one resource slot
	cat := newTestCatalog("R1")
	m := newManager(cat, lookup.KindAttributeCode)

	first, _, err := m.AddFromDefinition(tables.TableDefinition{
		Name: "First", Resources: []tables.ResourceRef{ref("R1")},
	})
	require.NoError(t, err)

	// Act
	second, _, err := m.AddFromDefinition(tables.TableDefinition{
		Name: "Second", Resources: []tables.ResourceRef{ref("R1")},
	})
	require.NoError(t, err)

	// Assert - slot points at the new table, old back-reference is gone
	r1 := cat.Resource("P1", "D1", "R1")
	assert.Equal(t, second.ID(), r1.AttributeCodeTable().ID())
	assert.Empty(t, first.Assignments())
	assert.Len(t, second.Assignments(), 1)
}

func TestManager_DeleteUnlinksEveryResource(t *testing.T) {
	// Arrange
	cat := newTestCatalog("R1", "R2")
	m := newManager(cat, lookup.KindItemCleanout)

	table, _, err := m.AddFromDefinition(tables.TableDefinition{
		Name: "Items", Resources: []tables.ResourceRef{ref("R1"), ref("R2")},
	})
	require.NoError(t, err)

	// Act
	require.NoError(t, m.Delete(table.ID()))

	// Assert
	assert.Equal(t, 0, m.Count())
	assert.Nil(t, cat.Resource("P1", "D1", "R1").ItemCleanoutTable())
	assert.Nil(t, cat.Resource("P1", "D1", "R2").ItemCleanoutTable())
	assert.Empty(t, table.Assignments())
}

func TestManager_DeleteAllLeavesNothingBehind(t *testing.T) {
	// Arrange
	cat := newTestCatalog("R1")
	m := newManager(cat, lookup.KindSetupCode)
	for _, name := range []string{"A", "B", "C"} {
		_, _, err := m.AddFromDefinition(tables.TableDefinition{
			Name: name, Resources: []tables.ResourceRef{ref("R1")},
		})
		require.NoError(t, err)
	}

	// Act
	m.DeleteAll()

	// Assert
	assert.Equal(t, 0, m.Count())
	assert.Nil(t, cat.Resource("P1", "D1", "R1").SetupCodeTable())
}

func TestManager_CopyStartsUnassigned(t *testing.T) {
	// Arrange
	cat := newTestCatalog("R1")
	m := newManager(cat, lookup.KindAttributeCode)
	source, _, err := m.AddFromDefinition(tables.TableDefinition{
		Name:      "Colors",
		Rows:      []tables.RowDefinition{{Previous: "RED", Next: "BLUE", DurationTicks: 60}},
		Resources: []tables.ResourceRef{ref("R1")},
	})
	require.NoError(t, err)

	// Act
	clone, err := m.Copy(source.ID())

	// Assert
	require.NoError(t, err)
	assert.NotEqual(t, source.ID(), clone.ID())
	assert.Equal(t, "Copy of Colors", clone.Name())
	assert.Empty(t, clone.Assignments())
	assert.Len(t, clone.Rows(), 1)
	assert.Equal(t, 2, m.Count())

	// The resource still points at the source
	assert.Equal(t, source.ID(), cat.Resource("P1", "D1", "R1").AttributeCodeTable().ID())
}

func TestManager_CopyUnknownIDIsAnError(t *testing.T) {
	m := newManager(newTestCatalog(), lookup.KindAttributeCode)

	_, err := m.Copy(42)

	assert.Error(t, err)
}

func TestManager_FindByNameIsCaseInsensitive(t *testing.T) {
	// Arrange
	m := newManager(newTestCatalog(), lookup.KindAttributeCode)
	table, _, err := m.AddFromDefinition(tables.TableDefinition{Name: "Changeovers"})
	require.NoError(t, err)

	// Act & Assert
	found := m.FindByName("CHANGEOVERS")
	require.NotNil(t, found)
	assert.Equal(t, table.ID(), found.ID())
	assert.Nil(t, m.FindByName("Other"))
}

func TestManager_TriggerDefinitionCarriesThreshold(t *testing.T) {
	// Arrange
	m := newManager(newTestCatalog(), lookup.KindCleanoutTriggerTime)

	// Act
	table, _, err := m.AddFromDefinition(tables.TableDefinition{
		Name:            "Hourly",
		TriggerRunTicks: 3600,
	})
	require.NoError(t, err)

	// Assert
	trigger, ok := table.(*lookup.CleanoutTriggerTable)
	require.True(t, ok)
	runTicks, _, _ := trigger.Threshold()
	assert.Equal(t, shared.Ticks(3600), runTicks)
	assert.Equal(t, lookup.TriggerTime, trigger.TriggerKind())
}

func TestBuildTable_PreservesCallerSuppliedID(t *testing.T) {
	// Used by persistence restore, which must keep stored ids.
	table := tables.BuildTable(lookup.KindItemCleanout, 77, tables.TableDefinition{
		Name:     "Items",
		Wildcard: "*",
		Rows:     []tables.RowDefinition{{Previous: "*", Next: "B", DurationTicks: 30}},
	})

	assert.Equal(t, int64(77), table.ID())
	assert.Equal(t, lookup.KindItemCleanout, table.Kind())
	assert.Len(t, table.Rows(), 1)
}
