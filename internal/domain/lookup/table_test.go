package lookup_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planforge/aps-go/internal/domain/lookup"
	"github.com/planforge/aps-go/internal/domain/shared"
)

func row(previous, next string, duration int64) lookup.CodeMapping {
	return lookup.NewCodeMapping(previous, next, 0, shared.Ticks(duration), 0, 0)
}

func TestAttributeCodeTable_ExactMatchAlwaysWins(t *testing.T) {
	// Arrange
	table := lookup.NewAttributeCodeTable(1, "Colors", "", "*", true, false)
	table.Add(row("RED", "BLUE", 100))
	table.Add(row("*", "BLUE", 50))
	table.Add(row("RED", "*", 30))

	// Act
	match := table.ResolveSetup("RED", "BLUE", 0)

	// Assert
	require.True(t, match.Found)
	assert.Equal(t, shared.Ticks(100), match.Duration)
}

func TestAttributeCodeTable_PrecedenceDecidesWildcardOrder(t *testing.T) {
	// Two wildcard rows both match (GREEN, BLUE). Which one wins depends
	// only on the precedence flag.
	nextFirst := lookup.NewAttributeCodeTable(1, "NextFirst", "", "*", true, false)
	nextFirst.Add(row("*", "BLUE", 50))
	nextFirst.Add(row("GREEN", "*", 30))

	prevFirst := lookup.NewAttributeCodeTable(2, "PrevFirst", "", "*", true, true)
	prevFirst.Add(row("*", "BLUE", 50))
	prevFirst.Add(row("GREEN", "*", 30))

	// Act
	nextMatch := nextFirst.ResolveSetup("GREEN", "BLUE", 0)
	prevMatch := prevFirst.ResolveSetup("GREEN", "BLUE", 0)

	// Assert - default precedence tries wildcard-on-previous first
	require.True(t, nextMatch.Found)
	assert.Equal(t, shared.Ticks(50), nextMatch.Duration)

	// previous precedence tries wildcard-on-next first
	require.True(t, prevMatch.Found)
	assert.Equal(t, shared.Ticks(30), prevMatch.Duration)
}

func TestAttributeCodeTable_NoWildcardConfiguredNeverMatchesWildcardRows(t *testing.T) {
	// Arrange - the "*" rows are plain literals without wildcard config
	table := lookup.NewAttributeCodeTable(1, "Literal", "", "", false, false)
	table.Add(row("*", "BLUE", 50))

	// Act
	miss := table.ResolveSetup("GREEN", "BLUE", 0)
	literal := table.ResolveSetup("*", "BLUE", 0)

	// Assert
	assert.False(t, miss.Found)
	assert.Equal(t, shared.Ticks(0), miss.Duration)
	assert.True(t, literal.Found)
}

func TestAttributeCodeTable_FullWildcardFallback(t *testing.T) {
	// Arrange
	table := lookup.NewAttributeCodeTable(1, "Fallback", "", "*", true, false)
	table.Add(row("*", "*", 10))
	table.Add(row("*", "BLUE", 50))

	// Act
	specific := table.ResolveSetup("GREEN", "BLUE", 0)
	fallback := table.ResolveSetup("GREEN", "YELLOW", 0)

	// Assert - the (*, *) row only applies when no single-sided row does
	assert.Equal(t, shared.Ticks(50), specific.Duration)
	require.True(t, fallback.Found)
	assert.Equal(t, shared.Ticks(10), fallback.Duration)
}

func TestAttributeCodeTable_ScopeIsPartOfTheKey(t *testing.T) {
	// Arrange
	table := lookup.NewAttributeCodeTable(1, "Scoped", "", "", false, false)
	table.Add(lookup.NewCodeMapping("RED", "BLUE", 7, 100, 0, 0))

	// Act & Assert
	assert.True(t, table.ResolveSetup("RED", "BLUE", 7).Found)
	assert.False(t, table.ResolveSetup("RED", "BLUE", 0).Found)
}

func TestCodeTable_AddIsFirstWriterWins(t *testing.T) {
	// Arrange
	table := lookup.NewItemCleanoutTable(1, "Items", "", "", false, false)
	table.Add(row("A", "B", 100))
	table.Add(row("A", "B", 999))

	// Act
	match := table.ResolveCleanout("A", "B", 0)

	// Assert
	require.True(t, match.Found)
	assert.Equal(t, shared.Ticks(100), match.Duration)
	assert.Equal(t, 1, len(table.Rows()))
}

func TestCodeTable_RebuildReplacesRowsAndKeepsAssignments(t *testing.T) {
	// Arrange
	table := lookup.NewItemCleanoutTable(1, "Items", "", "", false, false)
	table.Add(row("A", "B", 100))
	key := shared.ResourceKey{Plant: "P1", Department: "D1", Resource: "R1"}
	table.Assign(key)

	// Act
	table.Rebuild("Items v2", "updated", "*", true, true, []lookup.CodeMapping{
		row("*", "B", 40),
	})

	// Assert
	assert.Equal(t, "Items v2", table.Name())
	match := table.ResolveCleanout("A", "B", 0)
	require.True(t, match.Found)
	assert.Equal(t, shared.Ticks(40), match.Duration)
	assert.Equal(t, []shared.ResourceKey{key}, table.Assignments())
}

func TestCodeTable_CopyIsIndependentAndUnassigned(t *testing.T) {
	// Arrange
	source := lookup.NewItemCleanoutTable(1, "Items", "desc", "*", true, false)
	source.Add(row("A", "B", 100))
	source.Assign(shared.ResourceKey{Plant: "P1", Department: "D1", Resource: "R1"})

	// Act
	clone := source.Copy(2)
	clone.Add(row("C", "D", 60))

	// Assert
	assert.Equal(t, int64(2), clone.ID())
	assert.Equal(t, "Copy of Items", clone.Name())
	assert.Empty(t, clone.Assignments())
	assert.Equal(t, shared.Ticks(100), clone.ResolveCleanout("A", "B", 0).Duration)

	// Rows added to the clone never appear in the source
	assert.False(t, source.ResolveCleanout("C", "D", 0).Found)
}

func TestCleanoutTriggerTable_TriggerReached(t *testing.T) {
	// Arrange
	table := lookup.NewCleanoutTriggerTable(1, lookup.TriggerTime, "Time", "", "", false, false)
	table.SetThreshold(500, 0, 0)

	// Act & Assert
	assert.False(t, table.TriggerReached(499, 100, 100.0))
	assert.True(t, table.TriggerReached(500, 0, 0))
	assert.True(t, table.TriggerReached(501, 0, 0))
}

func TestCleanoutTriggerTable_ZeroThresholdNeverTrips(t *testing.T) {
	table := lookup.NewCleanoutTriggerTable(1, lookup.TriggerOperationCount, "Ops", "", "", false, false)

	assert.False(t, table.TriggerReached(10000, 10000, 10000.0))
}

func TestCleanoutTriggerTable_ThresholdOnlyForOwnKind(t *testing.T) {
	// Arrange - a production-units table ignores the other measures
	table := lookup.NewCleanoutTriggerTable(1, lookup.TriggerProductionUnits, "Units", "", "", false, false)
	table.SetThreshold(500, 50, 1000.0)

	// Act & Assert - only the units threshold was stored
	runTicks, opCount, units := table.Threshold()
	assert.Equal(t, shared.Ticks(0), runTicks)
	assert.Equal(t, 0, opCount)
	assert.Equal(t, 1000.0, units)

	assert.False(t, table.TriggerReached(9999, 9999, 999.0))
	assert.True(t, table.TriggerReached(0, 0, 1000.0))
}

func TestSetupCodeTable_ConvertToAttributeTable(t *testing.T) {
	// Arrange
	legacy := lookup.NewSetupCodeTable(1, "Legacy", "old setups", "*", true, true)
	legacy.Add(row("S1", "S2", 120))
	legacy.Add(row("*", "S2", 45))

	// Act
	converted := legacy.ConvertToAttributeTable(9, 0)

	// Assert - configuration and rows carry over on version 0
	assert.Equal(t, int64(9), converted.ID())
	assert.Equal(t, "Legacy", converted.Name())
	assert.Equal(t, shared.Ticks(120), converted.ResolveSetup("S1", "S2", 0).Duration)
	assert.Equal(t, shared.Ticks(45), converted.ResolveSetup("S9", "S2", 0).Duration)
}

func TestSetupCodeTable_ConvertDropsRowsOnLaterVersions(t *testing.T) {
	// Arrange
	legacy := lookup.NewSetupCodeTable(1, "Legacy", "", "", false, false)
	legacy.Add(row("S1", "S2", 120))

	// Act
	converted := legacy.ConvertToAttributeTable(9, 1)

	// Assert
	assert.Empty(t, converted.Rows())
}

func TestParseTableKind_RoundTrip(t *testing.T) {
	for _, kind := range lookup.AllTableKinds() {
		parsed, err := lookup.ParseTableKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}

	_, err := lookup.ParseTableKind("NOT_A_KIND")
	assert.Error(t, err)
}
