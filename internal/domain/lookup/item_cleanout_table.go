package lookup

// ItemCleanoutTable resolves clean-out duration, cost and grade from the
// item codes run immediately before and after on a resource. Rows may be
// scoped to a specific item id; scope 0 queries the unscoped rows.
type ItemCleanoutTable struct {
	codeTable
}

// NewItemCleanoutTable creates an empty item clean-out table.
func NewItemCleanoutTable(id int64, name, description, wildcard string, hasWildcard, previousPrecedence bool) *ItemCleanoutTable {
	return &ItemCleanoutTable{
		codeTable: newCodeTable(id, name, description, wildcard, hasWildcard, previousPrecedence),
	}
}

// Kind returns KindItemCleanout.
func (t *ItemCleanoutTable) Kind() TableKind { return KindItemCleanout }

// ResolveCleanout returns the clean-out duration/cost/grade for switching
// from previousItem to nextItem under the given item scope.
func (t *ItemCleanoutTable) ResolveCleanout(previousItem, nextItem string, itemID int64) CodeMatch {
	return t.Resolve(previousItem, nextItem, itemID)
}

// Rebuild replaces configuration and the full row set via clear + re-add.
func (t *ItemCleanoutTable) Rebuild(name, description, wildcard string, hasWildcard, previousPrecedence bool, rows []CodeMapping) {
	t.Reconfigure(name, description, wildcard, hasWildcard, previousPrecedence)
	t.Clear()
	for _, row := range rows {
		t.Add(row)
	}
}

// Copy produces a new table with the given id, a "Copy of" name, cloned
// rows and flags, and no resource assignments.
func (t *ItemCleanoutTable) Copy(newID int64) *ItemCleanoutTable {
	return &ItemCleanoutTable{codeTable: t.copyCore(newID)}
}

var _ Table = (*ItemCleanoutTable)(nil)
