package persistence

// Format versions gate field presence on read. Older scenarios persisted
// with a lower version simply lack the later fields; absent fields load
// as their documented defaults instead of failing.
const (
	// FormatVersionBase - name, description and rows only.
	FormatVersionBase = 0

	// FormatVersionWildcard added the wildcard token and the previous-
	// precedence flag. Tables below this version load with no wildcard
	// matching.
	FormatVersionWildcard = 1

	// FormatVersionTrigger added clean-out trigger thresholds and the
	// anchor fields on activity state.
	FormatVersionTrigger = 2

	// CurrentFormatVersion is written on every save.
	CurrentFormatVersion = FormatVersionTrigger
)

// LookupTableModel represents the lookup_tables table.
type LookupTableModel struct {
	ID            int64  `gorm:"column:id;primaryKey"`
	Kind          string `gorm:"column:kind;not null;index"`
	Name          string `gorm:"column:name;not null"`
	Description   string `gorm:"column:description"`
	FormatVersion int    `gorm:"column:format_version;not null;default:0"`

	// Present since FormatVersionWildcard.
	Wildcard           string `gorm:"column:wildcard"`
	PreviousPrecedence int    `gorm:"column:previous_precedence;default:0"` // 0 or 1 (SQLite compatible)

	// Present since FormatVersionTrigger; trigger kinds only.
	TriggerRunTicks        int64   `gorm:"column:trigger_run_ticks;default:0"`
	TriggerOperationCount  int     `gorm:"column:trigger_operation_count;default:0"`
	TriggerProductionUnits float64 `gorm:"column:trigger_production_units;default:0"`
}

func (LookupTableModel) TableName() string {
	return "lookup_tables"
}

// CodeRowModel represents the lookup_rows table.
type CodeRowModel struct {
	ID            int64   `gorm:"column:id;primaryKey;autoIncrement"`
	TableID       int64   `gorm:"column:table_id;not null;index"`
	Previous      string  `gorm:"column:previous;not null"`
	Next          string  `gorm:"column:next;not null"`
	Scope         int64   `gorm:"column:scope;default:0"`
	DurationTicks int64   `gorm:"column:duration_ticks;not null"`
	Cost          float64 `gorm:"column:cost;not null"`
	Grade         int     `gorm:"column:grade;default:0"`
}

func (CodeRowModel) TableName() string {
	return "lookup_rows"
}

// TableAssignmentModel represents the lookup_assignments table: which
// resources a lookup table is assigned to.
type TableAssignmentModel struct {
	ID         int64  `gorm:"column:id;primaryKey;autoIncrement"`
	TableID    int64  `gorm:"column:table_id;not null;index"`
	Plant      string `gorm:"column:plant;not null"`
	Department string `gorm:"column:department;not null"`
	Resource   string `gorm:"column:resource;not null"`
}

func (TableAssignmentModel) TableName() string {
	return "lookup_assignments"
}

// ActivityStateModel represents the activity_states table: the durable
// slice of an activity's state that must survive a process restart.
// Transient simulation flags are never persisted.
type ActivityStateModel struct {
	ID            int64 `gorm:"column:id;primaryKey"`
	OperationID   int64 `gorm:"column:operation_id;not null;index"`
	FormatVersion int   `gorm:"column:format_version;not null;default:0"`

	Status            string  `gorm:"column:status;not null"`
	RequiredFinishQty float64 `gorm:"column:required_finish_qty"`
	ReportedGoodQty   float64 `gorm:"column:reported_good_qty"`
	ReportedScrapQty  float64 `gorm:"column:reported_scrap_qty"`
	ReportedRunTicks  int64   `gorm:"column:reported_run_ticks"`
	ReportedSetupTicks int64  `gorm:"column:reported_setup_ticks"`
	ReportedPostTicks int64   `gorm:"column:reported_post_ticks"`

	// Present since FormatVersionTrigger; older rows load unanchored.
	Anchored      int   `gorm:"column:anchored;default:0"` // 0 or 1
	AnchorDateSet int   `gorm:"column:anchor_date_set;default:0"`
	AnchorTicks   int64 `gorm:"column:anchor_ticks;default:0"`
}

func (ActivityStateModel) TableName() string {
	return "activity_states"
}
