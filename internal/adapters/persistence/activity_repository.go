package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/planforge/aps-go/internal/domain/activity"
	"github.com/planforge/aps-go/internal/domain/shared"
)

// GormActivityRepository persists the durable slice of activity state:
// production status, reported quantities and the anchor fields. Transient
// simulation flags, satiators, locks and scores are rebuilt on every pass
// and are never written.
type GormActivityRepository struct {
	db *gorm.DB
}

// NewGormActivityRepository creates a new GORM activity repository.
func NewGormActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

// Save upserts one activity's durable state at the current format version.
func (r *GormActivityRepository) Save(ctx context.Context, a *activity.BaseActivity) error {
	model := activityToModel(a)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to save activity %d: %w", a.ID(), err)
	}
	return nil
}

// SaveAll upserts the durable state of every given activity in one
// transaction.
func (r *GormActivityRepository) SaveAll(ctx context.Context, activities []*activity.InternalActivity) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, a := range activities {
			model := activityToModel(&a.BaseActivity)
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).Create(&model).Error
			if err != nil {
				return fmt.Errorf("failed to save activity %d: %w", a.ID(), err)
			}
		}
		return nil
	})
}

// Restore loads the persisted state for one activity and applies it.
// A missing row leaves the activity untouched; the scenario was simply
// never saved. Anchor fields are honored only from FormatVersionTrigger
// on; older rows load unanchored.
func (r *GormActivityRepository) Restore(ctx context.Context, a *activity.BaseActivity) error {
	var model ActivityStateModel
	err := r.db.WithContext(ctx).Where("id = ?", a.ID()).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load activity %d: %w", a.ID(), err)
	}
	return applyModel(a, &model)
}

// Delete removes the persisted state for one activity.
func (r *GormActivityRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ActivityStateModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete activity %d: %w", id, err)
	}
	return nil
}

func activityToModel(a *activity.BaseActivity) ActivityStateModel {
	model := ActivityStateModel{
		ID:                 a.ID(),
		OperationID:        a.Operation().ID(),
		FormatVersion:      CurrentFormatVersion,
		Status:             a.Status().String(),
		RequiredFinishQty:  a.RequiredFinishQty(),
		ReportedGoodQty:    a.ReportedGoodQty(),
		ReportedScrapQty:   a.ReportedScrapQty(),
		ReportedRunTicks:   int64(a.ReportedRunTicks()),
		ReportedSetupTicks: int64(a.ReportedSetupTicks()),
		ReportedPostTicks:  int64(a.ReportedPostTicks()),
	}
	if a.IsAnchored() {
		model.Anchored = 1
	}
	if a.AnchorDateHasBeenSet() {
		model.AnchorDateSet = 1
		if date, err := a.AnchorDate(); err == nil {
			model.AnchorTicks = int64(date)
		}
	}
	return model
}

func applyModel(a *activity.BaseActivity, model *ActivityStateModel) error {
	a.SetRequiredFinishQty(model.RequiredFinishQty)
	a.ReportProduction(
		activity.ParseProductionStatus(model.Status),
		model.ReportedGoodQty,
		model.ReportedScrapQty,
		shared.Ticks(model.ReportedRunTicks),
		shared.Ticks(model.ReportedSetupTicks),
		shared.Ticks(model.ReportedPostTicks),
	)

	if model.FormatVersion >= FormatVersionTrigger && model.Anchored != 0 && model.AnchorDateSet != 0 {
		if err := a.ExternalAnchor(shared.Ticks(model.AnchorTicks)); err != nil {
			return fmt.Errorf("failed to restore anchor on activity %d: %w", a.ID(), err)
		}
	}
	return nil
}
