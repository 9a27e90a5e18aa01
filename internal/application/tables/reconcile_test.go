package tables_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planforge/aps-go/internal/application/tables"
	"github.com/planforge/aps-go/internal/domain/lookup"
	"github.com/planforge/aps-go/internal/domain/shared"
)

// recordingChangeSink captures change records in order.
type recordingChangeSink struct {
	added   []int64
	updated []int64
	deleted []int64
}

func (s *recordingChangeSink) TableAdded(_ lookup.TableKind, id int64)   { s.added = append(s.added, id) }
func (s *recordingChangeSink) TableUpdated(_ lookup.TableKind, id int64) { s.updated = append(s.updated, id) }
func (s *recordingChangeSink) TableDeleted(_ lookup.TableKind, id int64) { s.deleted = append(s.deleted, id) }

// recordingErrorSink captures reported batches.
type recordingErrorSink struct {
	batches map[uuid.UUID][]error
}

func (s *recordingErrorSink) ReportBatch(batchID uuid.UUID, errs []error) {
	if s.batches == nil {
		s.batches = make(map[uuid.UUID][]error)
	}
	s.batches[batchID] = errs
}

func def(name string) tables.TableDefinition {
	return tables.TableDefinition{
		Name: name,
		Rows: []tables.RowDefinition{{Previous: "A", Next: "B", DurationTicks: 10}},
	}
}

func TestReconcile_AddsNewTables(t *testing.T) {
	// Arrange
	m := newManager(newTestCatalog(), lookup.KindAttributeCode)
	changes := &recordingChangeSink{}

	// Act
	result, err := m.Reconcile(tables.NewFeedBatch(lookup.KindAttributeCode, false, def("A"), def("B")), changes, nil)

	// Assert
	require.NoError(t, err)
	assert.Len(t, result.AddedIDs, 2)
	assert.Empty(t, result.UpdatedIDs)
	assert.Empty(t, result.Deferred)
	assert.Empty(t, result.Errors)
	assert.Equal(t, result.AddedIDs, changes.added)
	assert.Equal(t, 2, m.Count())
}

func TestReconcile_RebuildsExistingTablesByName(t *testing.T) {
	// Arrange
	cat := newTestCatalog("R1")
	m := newManager(cat, lookup.KindAttributeCode)
	_, err := m.Reconcile(tables.NewFeedBatch(lookup.KindAttributeCode, false, tables.TableDefinition{
		Name:      "Colors",
		Rows:      []tables.RowDefinition{{Previous: "RED", Next: "BLUE", DurationTicks: 60}},
		Resources: []tables.ResourceRef{ref("R1")},
	}), nil, nil)
	require.NoError(t, err)

	changes := &recordingChangeSink{}

	// Act - same name, different case, new rows
	result, err := m.Reconcile(tables.NewFeedBatch(lookup.KindAttributeCode, false, tables.TableDefinition{
		Name:      "COLORS",
		Rows:      []tables.RowDefinition{{Previous: "RED", Next: "GREEN", DurationTicks: 45}},
		Resources: []tables.ResourceRef{ref("R1")},
	}), changes, nil)

	// Assert - one update, still one table, fresh content
	require.NoError(t, err)
	assert.Len(t, result.UpdatedIDs, 1)
	assert.Empty(t, result.AddedIDs)
	assert.Equal(t, 1, m.Count())

	rebuilt := m.FindByName("colors")
	require.NotNil(t, rebuilt)
	assert.Len(t, rebuilt.Rows(), 1)
	assert.Equal(t, rebuilt.ID(), cat.Resource("P1", "D1", "R1").AttributeCodeTable().ID())
}

func TestReconcile_SameDefinitionTwiceIsIdempotent(t *testing.T) {
	// Arrange
	m := newManager(newTestCatalog(), lookup.KindAttributeCode)
	colors := tables.TableDefinition{
		Name:     "Colors",
		Wildcard: "*",
		Rows: []tables.RowDefinition{
			{Previous: "RED", Next: "BLUE", DurationTicks: 60},
			{Previous: "*", Next: "BLUE", DurationTicks: 30},
		},
	}
	_, err := m.Reconcile(tables.NewFeedBatch(lookup.KindAttributeCode, false, colors), nil, nil)
	require.NoError(t, err)

	// Act - the identical snapshot again
	result, err := m.Reconcile(tables.NewFeedBatch(lookup.KindAttributeCode, false, colors), nil, nil)

	// Assert - one table, same rows, same resolution as after the first apply
	require.NoError(t, err)
	assert.Len(t, result.UpdatedIDs, 1)
	assert.Equal(t, 1, m.Count())

	attr, ok := m.FindByName("Colors").(*lookup.AttributeCodeTable)
	require.True(t, ok)
	assert.Len(t, attr.Rows(), 2)

	match := attr.ResolveSetup("GREEN", "BLUE", 0)
	require.True(t, match.Found)
	assert.Equal(t, shared.Ticks(30), match.Duration)
}

func TestReconcile_AutoDeleteRemovesAbsentTables(t *testing.T) {
	// Arrange - tables A and B exist
	m := newManager(newTestCatalog(), lookup.KindAttributeCode)
	_, err := m.Reconcile(tables.NewFeedBatch(lookup.KindAttributeCode, true, def("A"), def("B")), nil, nil)
	require.NoError(t, err)

	changes := &recordingChangeSink{}

	// Act - authoritative snapshot naming only A
	result, err := m.Reconcile(tables.NewFeedBatch(lookup.KindAttributeCode, true, def("A")), changes, nil)
	require.NoError(t, err)
	m.ExecuteDeferred(result.Deferred, changes)

	// Assert - exactly one deferred deletion, for B
	require.Len(t, result.Deferred, 1)
	assert.Equal(t, "B", result.Deferred[0].Name)
	assert.Len(t, changes.deleted, 1)

	assert.Equal(t, 1, m.Count())
	assert.NotNil(t, m.FindByName("A"))
	assert.Nil(t, m.FindByName("B"))
}

func TestReconcile_WithoutAutoDeleteAbsentTablesSurvive(t *testing.T) {
	// Arrange
	m := newManager(newTestCatalog(), lookup.KindAttributeCode)
	_, err := m.Reconcile(tables.NewFeedBatch(lookup.KindAttributeCode, false, def("A"), def("B")), nil, nil)
	require.NoError(t, err)

	// Act
	result, err := m.Reconcile(tables.NewFeedBatch(lookup.KindAttributeCode, false, def("A")), nil, nil)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, result.Deferred)
	assert.Equal(t, 2, m.Count())
}

func TestReconcile_InvalidDefinitionDoesNotBlockSiblings(t *testing.T) {
	// Arrange - the nameless definition fails validation
	m := newManager(newTestCatalog(), lookup.KindAttributeCode)
	errors := &recordingErrorSink{}
	batch := tables.NewFeedBatch(lookup.KindAttributeCode, false, def("Good"), tables.TableDefinition{})

	// Act
	result, err := m.Reconcile(batch, nil, errors)

	// Assert
	require.NoError(t, err)
	assert.Len(t, result.AddedIDs, 1)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 1, m.Count())

	// The errors were reported once, keyed to the batch
	require.Contains(t, errors.batches, batch.ID)
	assert.Len(t, errors.batches[batch.ID], 1)
}

func TestReconcile_InvalidDefinitionStillCountsAsPresent(t *testing.T) {
	// Arrange - table A exists; the authoritative snapshot names A but its
	// definition carries an invalid row
	m := newManager(newTestCatalog(), lookup.KindAttributeCode)
	_, err := m.Reconcile(tables.NewFeedBatch(lookup.KindAttributeCode, true, def("A")), nil, nil)
	require.NoError(t, err)

	bad := tables.TableDefinition{
		Name: "A",
		Rows: []tables.RowDefinition{{Previous: "A", Next: "B", DurationTicks: -5}},
	}

	// Act
	result, err := m.Reconcile(tables.NewFeedBatch(lookup.KindAttributeCode, true, bad), nil, nil)

	// Assert - the rejection is reported, but A is named by the snapshot
	// and must survive auto-delete untouched
	require.NoError(t, err)
	assert.Len(t, result.Errors, 1)
	assert.Empty(t, result.Deferred)
	require.NotNil(t, m.FindByName("A"))
	assert.Len(t, m.FindByName("A").Rows(), 1)
}

func TestReconcile_KindMismatchAborts(t *testing.T) {
	m := newManager(newTestCatalog(), lookup.KindAttributeCode)

	_, err := m.Reconcile(tables.NewFeedBatch(lookup.KindItemCleanout, false, def("A")), nil, nil)

	assert.Error(t, err)
}

func TestExecuteDeferred_SkipsForeignKinds(t *testing.T) {
	// Arrange
	m := newManager(newTestCatalog(), lookup.KindAttributeCode)
	table, _, err := m.AddFromDefinition(def("A"))
	require.NoError(t, err)

	// Act - a deferred deletion for another kind must be ignored
	m.ExecuteDeferred([]tables.DeferredDeletion{
		{Kind: lookup.KindItemCleanout, TableID: table.ID(), Name: "A"},
	}, nil)

	// Assert
	assert.Equal(t, 1, m.Count())
}
