package tables

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/planforge/aps-go/internal/domain/lookup"
	"github.com/planforge/aps-go/internal/domain/shared"
)

var feedValidator = validator.New()

// DeferredDeletion is an explicit "delete table X after the batch"
// command. Deletions are deferred so an enumeration in progress is never
// mutated mid-iteration; the caller runs ExecuteDeferred once the main
// reconciliation returns.
type DeferredDeletion struct {
	Kind    lookup.TableKind
	TableID int64
	Name    string
}

// ReconcileResult is the outcome of one batch: which ids were added or
// updated, which deletions are pending, and every validation error
// accumulated along the way.
type ReconcileResult struct {
	BatchID  string
	AddedIDs []int64

	UpdatedIDs []int64
	Deferred   []DeferredDeletion
	Errors     []error
}

// Reconcile applies a full snapshot of tables pushed by an external
// system.
//
// For every incoming definition: an existing table of the same name is
// deleted (unlinking its resources) and reconstructed fresh; otherwise the
// definition is constructed as new. In auto-delete mode, tables absent
// from the snapshot by name are marked for deferred deletion. Per-item
// validation failures accumulate in the result and never block sibling
// items.
func (m *Manager) Reconcile(batch FeedBatch, changes ChangeSink, errors ErrorSink) (*ReconcileResult, error) {
	if changes == nil {
		changes = NopChangeSink{}
	}
	if errors == nil {
		errors = NopErrorSink{}
	}
	if batch.Kind != m.kind {
		return nil, shared.NewDomainError(
			fmt.Sprintf("batch kind %s does not match manager kind %s", batch.Kind, m.kind))
	}

	result := &ReconcileResult{BatchID: batch.ID.String()}
	seen := make(map[string]bool, len(batch.Tables))

	for _, def := range batch.Tables {
		// A named definition counts as present in the snapshot even when it
		// fails validation; auto-delete must never remove a table the
		// snapshot names.
		if def.Name != "" {
			seen[canonicalName(def.Name)] = true
		}

		if err := feedValidator.Struct(def); err != nil {
			result.Errors = append(result.Errors, shared.NewValidationError("table",
				fmt.Sprintf("definition %q rejected: %v", def.Name, err)))
			continue
		}

		existing := m.FindByName(def.Name)
		updated := existing != nil
		if updated {
			if err := m.Delete(existing.ID()); err != nil {
				result.Errors = append(result.Errors, err)
				continue
			}
		}

		table, linkErrs, err := m.AddFromDefinition(def)
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		result.Errors = append(result.Errors, linkErrs...)

		if updated {
			result.UpdatedIDs = append(result.UpdatedIDs, table.ID())
			changes.TableUpdated(m.kind, table.ID())
		} else {
			result.AddedIDs = append(result.AddedIDs, table.ID())
			changes.TableAdded(m.kind, table.ID())
		}
	}

	if batch.AutoDelete {
		for _, table := range m.Tables() {
			if !seen[canonicalName(table.Name())] {
				result.Deferred = append(result.Deferred, DeferredDeletion{
					Kind:    m.kind,
					TableID: table.ID(),
					Name:    table.Name(),
				})
			}
		}
	}

	if len(result.Errors) > 0 {
		errors.ReportBatch(batch.ID, result.Errors)
	}
	return result, nil
}

// ExecuteDeferred runs the deferred deletions collected by Reconcile.
// Failures are logged independently per item; one failed deletion never
// prevents the others.
func (m *Manager) ExecuteDeferred(deferred []DeferredDeletion, changes ChangeSink) {
	if changes == nil {
		changes = NopChangeSink{}
	}
	for _, action := range deferred {
		if action.Kind != m.kind {
			continue
		}
		if err := m.Delete(action.TableID); err != nil {
			log.Printf("deferred deletion of %s table %d (%s) failed: %v",
				action.Kind, action.TableID, action.Name, err)
			continue
		}
		changes.TableDeleted(action.Kind, action.TableID)
	}
}

func canonicalName(name string) string {
	return strings.ToLower(name)
}
