package tables

import (
	"context"

	"github.com/planforge/aps-go/internal/domain/catalog"
	"github.com/planforge/aps-go/internal/domain/lookup"
	"github.com/planforge/aps-go/internal/domain/shared"
)

// Store is the persistence port for one manager's table set.
type Store interface {
	SaveAll(ctx context.Context, m *Manager) error
	LoadAll(ctx context.Context, m *Manager) ([]error, error)
}

// Registry holds the manager for every table kind. All managers share one
// id generator so table ids never collide across kinds.
type Registry struct {
	managers map[lookup.TableKind]*Manager
}

// NewRegistry creates one manager per kind over the shared catalog and id
// generator.
func NewRegistry(cat catalog.Catalog, ids shared.IDGenerator) *Registry {
	managers := make(map[lookup.TableKind]*Manager)
	for _, kind := range lookup.AllTableKinds() {
		managers[kind] = NewManager(kind, cat, ids)
	}
	return &Registry{managers: managers}
}

// Manager returns the manager owning the given kind.
func (r *Registry) Manager(kind lookup.TableKind) *Manager {
	return r.managers[kind]
}

// Reconcile routes a feed batch to the manager owning its kind.
func (r *Registry) Reconcile(batch FeedBatch, changes ChangeSink, errors ErrorSink) (*ReconcileResult, error) {
	return r.managers[batch.Kind].Reconcile(batch, changes, errors)
}

// Restore loads every kind's persisted tables. Link validation errors are
// collected across kinds; a hard load failure aborts.
func (r *Registry) Restore(ctx context.Context, store Store) ([]error, error) {
	var linkErrs []error
	for _, kind := range lookup.AllTableKinds() {
		errs, err := store.LoadAll(ctx, r.managers[kind])
		if err != nil {
			return nil, err
		}
		linkErrs = append(linkErrs, errs...)
	}
	return linkErrs, nil
}

// Persist saves every kind's table set.
func (r *Registry) Persist(ctx context.Context, store Store) error {
	for _, kind := range lookup.AllTableKinds() {
		if err := store.SaveAll(ctx, r.managers[kind]); err != nil {
			return err
		}
	}
	return nil
}
