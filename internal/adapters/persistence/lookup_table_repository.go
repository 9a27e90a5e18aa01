package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/planforge/aps-go/internal/application/tables"
	"github.com/planforge/aps-go/internal/domain/lookup"
)

// GormLookupTableRepository persists the lookup tables of one kind
// through the generic reader/writer abstraction (GORM). Reads are
// version-gated: a table saved before FormatVersionWildcard loads with no
// wildcard matching, and trigger thresholds only exist from
// FormatVersionTrigger on.
type GormLookupTableRepository struct {
	db *gorm.DB
}

// NewGormLookupTableRepository creates a new GORM lookup table repository.
func NewGormLookupTableRepository(db *gorm.DB) *GormLookupTableRepository {
	return &GormLookupTableRepository{db: db}
}

// SaveAll replaces the persisted snapshot for the manager's kind with its
// current table set, at the current format version.
func (r *GormLookupTableRepository) SaveAll(ctx context.Context, m *tables.Manager) error {
	kind := m.Kind().String()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var staleIDs []int64
		if err := tx.Model(&LookupTableModel{}).Where("kind = ?", kind).Pluck("id", &staleIDs).Error; err != nil {
			return fmt.Errorf("failed to list stale tables: %w", err)
		}
		if len(staleIDs) > 0 {
			if err := tx.Where("table_id IN ?", staleIDs).Delete(&CodeRowModel{}).Error; err != nil {
				return fmt.Errorf("failed to clear stale rows: %w", err)
			}
			if err := tx.Where("table_id IN ?", staleIDs).Delete(&TableAssignmentModel{}).Error; err != nil {
				return fmt.Errorf("failed to clear stale assignments: %w", err)
			}
			if err := tx.Where("kind = ?", kind).Delete(&LookupTableModel{}).Error; err != nil {
				return fmt.Errorf("failed to clear stale tables: %w", err)
			}
		}

		for _, table := range m.Tables() {
			model := tableToModel(table)
			if err := tx.Create(&model).Error; err != nil {
				return fmt.Errorf("failed to save table %q: %w", table.Name(), err)
			}
			for _, row := range table.Rows() {
				rowModel := CodeRowModel{
					TableID:       table.ID(),
					Previous:      row.Previous(),
					Next:          row.Next(),
					Scope:         row.Scope(),
					DurationTicks: int64(row.Duration()),
					Cost:          row.Cost(),
					Grade:         row.Grade(),
				}
				if err := tx.Create(&rowModel).Error; err != nil {
					return fmt.Errorf("failed to save row for table %q: %w", table.Name(), err)
				}
			}
			for _, key := range table.Assignments() {
				assignModel := TableAssignmentModel{
					TableID:    table.ID(),
					Plant:      key.Plant,
					Department: key.Department,
					Resource:   key.Resource,
				}
				if err := tx.Create(&assignModel).Error; err != nil {
					return fmt.Errorf("failed to save assignment for table %q: %w", table.Name(), err)
				}
			}
		}
		return nil
	})
}

// LoadAll restores every persisted table of the manager's kind into the
// manager, relinking resource assignments through the catalog. Validation
// errors from unresolvable assignments are returned without aborting the
// load.
func (r *GormLookupTableRepository) LoadAll(ctx context.Context, m *tables.Manager) ([]error, error) {
	kind := m.Kind().String()

	var models []LookupTableModel
	if err := r.db.WithContext(ctx).Where("kind = ?", kind).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to load %s tables: %w", kind, err)
	}

	var linkErrs []error
	for _, model := range models {
		table, err := r.modelToTable(ctx, m.Kind(), &model)
		if err != nil {
			return nil, err
		}
		if err := m.Add(table); err != nil {
			return nil, err
		}

		var assigns []TableAssignmentModel
		if err := r.db.WithContext(ctx).Where("table_id = ?", model.ID).Find(&assigns).Error; err != nil {
			return nil, fmt.Errorf("failed to load assignments for table %d: %w", model.ID, err)
		}
		refs := make([]tables.ResourceRef, 0, len(assigns))
		for _, a := range assigns {
			refs = append(refs, tables.ResourceRef{Plant: a.Plant, Department: a.Department, Resource: a.Resource})
		}
		linkErrs = append(linkErrs, m.Link(table, refs)...)
	}
	return linkErrs, nil
}

func tableToModel(table lookup.Table) LookupTableModel {
	model := LookupTableModel{
		ID:            table.ID(),
		Kind:          table.Kind().String(),
		Name:          table.Name(),
		Description:   table.Description(),
		FormatVersion: CurrentFormatVersion,
	}

	switch t := table.(type) {
	case *lookup.AttributeCodeTable:
		model.Wildcard, model.PreviousPrecedence = wildcardColumns(t.HasWildcard(), t.Wildcard(), t.PreviousPrecedence())
	case *lookup.ItemCleanoutTable:
		model.Wildcard, model.PreviousPrecedence = wildcardColumns(t.HasWildcard(), t.Wildcard(), t.PreviousPrecedence())
	case *lookup.SetupCodeTable:
		model.Wildcard, model.PreviousPrecedence = wildcardColumns(t.HasWildcard(), t.Wildcard(), t.PreviousPrecedence())
	case *lookup.CleanoutTriggerTable:
		model.Wildcard, model.PreviousPrecedence = wildcardColumns(t.HasWildcard(), t.Wildcard(), t.PreviousPrecedence())
		runTicks, opCount, units := t.Threshold()
		model.TriggerRunTicks = int64(runTicks)
		model.TriggerOperationCount = opCount
		model.TriggerProductionUnits = units
	}
	return model
}

func wildcardColumns(hasWildcard bool, wildcard string, previousPrecedence bool) (string, int) {
	if !hasWildcard {
		return "", 0
	}
	prec := 0
	if previousPrecedence {
		prec = 1
	}
	return wildcard, prec
}

// modelToTable rebuilds a domain table from its persisted form, honoring
// the row's format version.
func (r *GormLookupTableRepository) modelToTable(ctx context.Context, kind lookup.TableKind, model *LookupTableModel) (lookup.Table, error) {
	def := tables.TableDefinition{
		Name:        model.Name,
		Description: model.Description,
	}

	if model.FormatVersion >= FormatVersionWildcard {
		def.Wildcard = model.Wildcard
		def.PreviousPrecedence = model.PreviousPrecedence != 0
	}
	if model.FormatVersion >= FormatVersionTrigger {
		def.TriggerRunTicks = model.TriggerRunTicks
		def.TriggerOperationCount = model.TriggerOperationCount
		def.TriggerProductionUnits = model.TriggerProductionUnits
	}

	var rowModels []CodeRowModel
	if err := r.db.WithContext(ctx).Where("table_id = ?", model.ID).Find(&rowModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load rows for table %d: %w", model.ID, err)
	}
	for _, row := range rowModels {
		def.Rows = append(def.Rows, tables.RowDefinition{
			Previous:      row.Previous,
			Next:          row.Next,
			Scope:         row.Scope,
			DurationTicks: row.DurationTicks,
			Cost:          row.Cost,
			Grade:         row.Grade,
		})
	}

	return tables.BuildTable(kind, model.ID, def), nil
}
