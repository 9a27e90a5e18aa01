package lookup

// SetupCodeTable is the legacy setup matching table. It predates attribute
// scoping: rows are always unscoped (scope 0). New scenarios use
// AttributeCodeTable; this type survives only to load old data and convert
// it forward.
type SetupCodeTable struct {
	codeTable
}

// NewSetupCodeTable creates an empty legacy setup code table.
func NewSetupCodeTable(id int64, name, description, wildcard string, hasWildcard, previousPrecedence bool) *SetupCodeTable {
	return &SetupCodeTable{
		codeTable: newCodeTable(id, name, description, wildcard, hasWildcard, previousPrecedence),
	}
}

// Kind returns KindSetupCode.
func (t *SetupCodeTable) Kind() TableKind { return KindSetupCode }

// ResolveSetup returns the setup duration/cost for the code pair.
func (t *SetupCodeTable) ResolveSetup(previousCode, nextCode string) CodeMatch {
	return t.Resolve(previousCode, nextCode, 0)
}

// Rebuild replaces configuration and the full row set via clear + re-add.
func (t *SetupCodeTable) Rebuild(name, description, wildcard string, hasWildcard, previousPrecedence bool, rows []CodeMapping) {
	t.Reconfigure(name, description, wildcard, hasWildcard, previousPrecedence)
	t.Clear()
	for _, row := range rows {
		t.Add(row)
	}
}

// ConvertToAttributeTable upgrades a legacy table to an attribute code
// table. For format versions >= 1 the parsed rows are dropped on purpose:
// that data predates attributes, carries no attribute linkage, and real
// upgrade sets ship the replacement rows in the same transmission. Only
// version 0 data migrates its rows (unscoped).
func (t *SetupCodeTable) ConvertToAttributeTable(newID int64, formatVersion int) *AttributeCodeTable {
	converted := NewAttributeCodeTable(newID, t.name, t.description, t.wildcard, t.hasWildcard, t.previousPrecedence)
	if formatVersion >= 1 {
		return converted
	}
	for _, row := range t.Rows() {
		converted.Add(NewCodeMapping(row.Previous(), row.Next(), 0, row.Duration(), row.Cost(), row.Grade()))
	}
	return converted
}

// Copy produces a new table with the given id, a "Copy of" name, cloned
// rows and flags, and no resource assignments.
func (t *SetupCodeTable) Copy(newID int64) *SetupCodeTable {
	return &SetupCodeTable{codeTable: t.copyCore(newID)}
}

var _ Table = (*SetupCodeTable)(nil)
