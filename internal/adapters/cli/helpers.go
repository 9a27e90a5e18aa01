package cli

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	catalogAdapter "github.com/planforge/aps-go/internal/adapters/catalog"
	"github.com/planforge/aps-go/internal/adapters/persistence"
	"github.com/planforge/aps-go/internal/application/tables"
	"github.com/planforge/aps-go/internal/domain/lookup"
	"github.com/planforge/aps-go/internal/domain/shared"
	"github.com/planforge/aps-go/internal/infrastructure/config"
	"github.com/planforge/aps-go/internal/infrastructure/database"
)

// engine bundles the pieces every CLI command needs: the open database,
// the table registry restored from it, and the shared id generator.
type engine struct {
	cfg      *config.Config
	db       *gorm.DB
	catalog  *catalogAdapter.MemoryCatalog
	registry *tables.Registry
	ids      *shared.SequentialIDGenerator
	store    tables.Store
}

// openEngine loads configuration, opens the database and restores every
// persisted lookup table. Link errors (tables referencing resources the
// catalog does not know) are reported on stderr in verbose mode and do
// not abort.
func openEngine(ctx context.Context) (*engine, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		database.Close(db)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	cat := catalogAdapter.NewMemoryCatalog()
	ids := shared.NewSequentialIDGenerator(1)
	registry := tables.NewRegistry(cat, ids)
	store := persistence.NewGormLookupTableRepository(db)

	linkErrs, err := registry.Restore(ctx, store)
	if err != nil {
		database.Close(db)
		return nil, fmt.Errorf("failed to restore lookup tables: %w", err)
	}
	if verbose {
		for _, e := range linkErrs {
			fmt.Printf("warning: %v\n", e)
		}
	}

	// Fresh ids must start above everything restored.
	maxID := int64(0)
	for _, kind := range lookup.AllTableKinds() {
		for _, t := range registry.Manager(kind).Tables() {
			if t.ID() > maxID {
				maxID = t.ID()
			}
		}
	}
	ids.Advance(maxID + 1)

	return &engine{
		cfg:      cfg,
		db:       db,
		catalog:  cat,
		registry: registry,
		ids:      ids,
		store:    store,
	}, nil
}

// persist writes the current table sets back to the database.
func (e *engine) persist(ctx context.Context) error {
	return e.registry.Persist(ctx, e.store)
}

// close releases the database connection.
func (e *engine) close() {
	database.Close(e.db)
}

// parseKindFlag resolves the --kind flag value.
func parseKindFlag(name string) (lookup.TableKind, error) {
	kind, err := lookup.ParseTableKind(name)
	if err != nil {
		return 0, fmt.Errorf("%w (expected one of ATTRIBUTE_CODE, ITEM_CLEANOUT, CLEANOUT_TRIGGER_TIME, CLEANOUT_TRIGGER_OPERATION_COUNT, CLEANOUT_TRIGGER_PRODUCTION_UNITS, SETUP_CODE)", err)
	}
	return kind, nil
}
