package tables

import (
	"github.com/google/uuid"

	"github.com/planforge/aps-go/internal/domain/lookup"
	"github.com/planforge/aps-go/internal/domain/shared"
)

// ResourceRef names a resource the way an external system does: by plant,
// department and resource key. Reconciliation resolves it against the
// catalog; an unresolvable ref is a validation error, not an abort.
type ResourceRef struct {
	Plant      string `mapstructure:"plant" validate:"required"`
	Department string `mapstructure:"department" validate:"required"`
	Resource   string `mapstructure:"resource" validate:"required"`
}

// RowDefinition is one transmitted lookup row.
type RowDefinition struct {
	Previous      string  `mapstructure:"previous" validate:"required"`
	Next          string  `mapstructure:"next" validate:"required"`
	Scope         int64   `mapstructure:"scope"`
	DurationTicks int64   `mapstructure:"duration_ticks" validate:"gte=0"`
	Cost          float64 `mapstructure:"cost" validate:"gte=0"`
	Grade         int     `mapstructure:"grade" validate:"gte=0"`
}

// TableDefinition is the transmitted form of one lookup table. It is an
// immutable input: reconciliation constructs domain tables from it and
// never writes back.
//
// An empty Wildcard means no wildcard matching at all, the documented
// default for feeds (and old format versions) that omit it.
type TableDefinition struct {
	Name               string          `mapstructure:"name" validate:"required"`
	Description        string          `mapstructure:"description"`
	Wildcard           string          `mapstructure:"wildcard"`
	PreviousPrecedence bool            `mapstructure:"previous_precedence"`
	Rows               []RowDefinition `mapstructure:"rows" validate:"dive"`
	Resources          []ResourceRef   `mapstructure:"resources" validate:"dive"`

	// Trigger thresholds, meaningful only for clean-out trigger feeds.
	TriggerRunTicks        int64   `mapstructure:"trigger_run_ticks" validate:"gte=0"`
	TriggerOperationCount  int     `mapstructure:"trigger_operation_count" validate:"gte=0"`
	TriggerProductionUnits float64 `mapstructure:"trigger_production_units" validate:"gte=0"`
}

// HasWildcard reports whether the definition configures wildcard matching.
func (d TableDefinition) HasWildcard() bool { return d.Wildcard != "" }

// DomainRows converts the transmitted rows into immutable domain rows.
func (d TableDefinition) DomainRows() []lookup.CodeMapping {
	rows := make([]lookup.CodeMapping, 0, len(d.Rows))
	for _, r := range d.Rows {
		rows = append(rows, lookup.NewCodeMapping(r.Previous, r.Next, r.Scope, shared.Ticks(r.DurationTicks), r.Cost, r.Grade))
	}
	return rows
}

// FeedBatch is a full snapshot of tables of one kind pushed by an external
// system. AutoDelete marks the snapshot as authoritative: tables not named
// in it are deleted (deferred, after the main reconciliation).
type FeedBatch struct {
	ID         uuid.UUID         `mapstructure:"id"`
	Kind       lookup.TableKind  `mapstructure:"kind"`
	AutoDelete bool              `mapstructure:"auto_delete"`
	Tables     []TableDefinition `mapstructure:"tables" validate:"dive"`
}

// NewFeedBatch creates a batch with a fresh id.
func NewFeedBatch(kind lookup.TableKind, autoDelete bool, defs ...TableDefinition) FeedBatch {
	return FeedBatch{
		ID:         uuid.New(),
		Kind:       kind,
		AutoDelete: autoDelete,
		Tables:     defs,
	}
}
