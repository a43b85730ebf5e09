package compiled

import (
	"errors"
	"fmt"

	"archive-app/internal/domain/catalog"

	"gorm.io/gorm"
)

// AttachWork adds a work to a volume. The join row and the work's
// compiled_parent_id are written in the same transaction so the two
// representations cannot diverge.
func AttachWork(db *gorm.DB, volumeID, workID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var v catalog.Volume
		if err := tx.First(&v, "id = ?", volumeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return catalog.ErrNotFound
			}
			return err
		}

		var w catalog.Work
		if err := tx.First(&w, "id = ?", workID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return catalog.ErrNotFound
			}
			return err
		}

		if catalog.Canonical(w.Category) != catalog.Canonical(v.Category) {
			return catalog.NewValidationError("work_id",
				fmt.Sprintf("%s work cannot join a %s volume",
					catalog.Canonical(w.Category), catalog.Canonical(v.Category)))
		}

		var existing catalog.VolumeItem
		err := tx.First(&existing, "volume_id = ? AND work_id = ?", v.ID, w.ID).Error
		if err == nil {
			return catalog.NewValidationError("work_id", "already attached to this volume")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// A parent pointer with no matching join row is surfaced, not
		// silently repaired; only the archive cascade repairs drift.
		if w.CompiledParentID != nil && *w.CompiledParentID != v.ID {
			return fmt.Errorf("%w: work %s already claims parent %s",
				catalog.ErrConsistency, w.ID, *w.CompiledParentID)
		}

		if err := tx.Create(&catalog.VolumeItem{VolumeID: v.ID, WorkID: w.ID}).Error; err != nil {
			return err
		}
		return tx.Model(&catalog.Work{}).
			Where("id = ?", w.ID).
			Update("compiled_parent_id", v.ID).Error
	})
}

// DetachWork removes a work from a volume, clearing the denormalized parent
// pointer in the same transaction.
func DetachWork(db *gorm.DB, volumeID, workID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("volume_id = ? AND work_id = ?", volumeID, workID).
			Delete(&catalog.VolumeItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return catalog.ErrNotFound
		}
		return tx.Model(&catalog.Work{}).
			Where("id = ? AND compiled_parent_id = ?", workID, volumeID).
			Update("compiled_parent_id", nil).Error
	})
}
