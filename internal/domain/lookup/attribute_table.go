package lookup

// AttributeCodeTable resolves setup duration and cost from the attribute
// codes run immediately before and after a changeover. Rows may be scoped
// to a specific attribute id; scope 0 queries the unscoped rows.
type AttributeCodeTable struct {
	codeTable
}

// NewAttributeCodeTable creates an empty attribute code table.
func NewAttributeCodeTable(id int64, name, description, wildcard string, hasWildcard, previousPrecedence bool) *AttributeCodeTable {
	return &AttributeCodeTable{
		codeTable: newCodeTable(id, name, description, wildcard, hasWildcard, previousPrecedence),
	}
}

// Kind returns KindAttributeCode.
func (t *AttributeCodeTable) Kind() TableKind { return KindAttributeCode }

// ResolveSetup returns the setup duration/cost for switching from
// previousCode to nextCode under the given attribute scope.
func (t *AttributeCodeTable) ResolveSetup(previousCode, nextCode string, attributeID int64) CodeMatch {
	return t.Resolve(previousCode, nextCode, attributeID)
}

// Rebuild replaces configuration and the full row set. The table is
// cleared and every row re-added so bucket placement follows the new
// wildcard configuration.
func (t *AttributeCodeTable) Rebuild(name, description, wildcard string, hasWildcard, previousPrecedence bool, rows []CodeMapping) {
	t.Reconfigure(name, description, wildcard, hasWildcard, previousPrecedence)
	t.Clear()
	for _, row := range rows {
		t.Add(row)
	}
}

// Copy produces a new table with the given id, a "Copy of" name, cloned
// rows and flags, and no resource assignments.
func (t *AttributeCodeTable) Copy(newID int64) *AttributeCodeTable {
	return &AttributeCodeTable{codeTable: t.copyCore(newID)}
}

var _ Table = (*AttributeCodeTable)(nil)
