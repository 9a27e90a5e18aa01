package tables

import (
	"github.com/google/uuid"

	"github.com/planforge/aps-go/internal/domain/lookup"
)

// ChangeSink records added/updated/deleted table ids per kind for
// downstream UI and replication.
type ChangeSink interface {
	TableAdded(kind lookup.TableKind, id int64)
	TableUpdated(kind lookup.TableKind, id int64)
	TableDeleted(kind lookup.TableKind, id int64)
}

// ErrorSink receives the validation errors accumulated for one feed batch,
// keyed to the triggering batch.
type ErrorSink interface {
	ReportBatch(batchID uuid.UUID, errs []error)
}

// NopChangeSink discards change records.
type NopChangeSink struct{}

func (NopChangeSink) TableAdded(lookup.TableKind, int64)   {}
func (NopChangeSink) TableUpdated(lookup.TableKind, int64) {}
func (NopChangeSink) TableDeleted(lookup.TableKind, int64) {}

// NopErrorSink discards error batches.
type NopErrorSink struct{}

func (NopErrorSink) ReportBatch(uuid.UUID, []error) {}
