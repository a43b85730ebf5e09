package archives

import (
	"errors"
	"time"

	"archive-app/internal/domain/catalog"

	"gorm.io/gorm"
)

// Archive soft-deletes a volume and every current child work in one
// transaction. Children are stamped with the same instant as the volume and
// their compiled_parent_id is re-pointed at the volume, repairing any drift
// between the join table and the denormalized column. Any failure rolls the
// whole cascade back.
func Archive(db *gorm.DB, volumeID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var v catalog.Volume
		if err := tx.Unscoped().First(&v, "id = ?", volumeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return catalog.ErrNotFound
			}
			return err
		}
		if v.DeletedAt.Valid {
			return catalog.ErrAlreadyArchived
		}

		var childIDs []string
		if err := tx.Model(&catalog.VolumeItem{}).
			Where("volume_id = ?", v.ID).
			Pluck("work_id", &childIDs).Error; err != nil {
			return err
		}

		now := time.Now().UTC()

		if len(childIDs) > 0 {
			if err := tx.Unscoped().Model(&catalog.Work{}).
				Where("id IN ?", childIDs).
				Updates(map[string]interface{}{
					"deleted_at":         now,
					"compiled_parent_id": v.ID,
				}).Error; err != nil {
				return err
			}
		}

		return tx.Unscoped().Model(&catalog.Volume{}).
			Where("id = ?", v.ID).
			Update("deleted_at", now).Error
	})
}

// Restore clears the volume's archive marker. Children are deliberately left
// alone: they may have been archived individually for independent reasons,
// so the cascade only runs on archive.
func Restore(db *gorm.DB, volumeID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var v catalog.Volume
		if err := tx.Unscoped().First(&v, "id = ?", volumeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return catalog.ErrNotFound
			}
			return err
		}
		if !v.DeletedAt.Valid {
			return catalog.ErrNotArchived
		}

		return tx.Unscoped().Model(&catalog.Volume{}).
			Where("id = ?", v.ID).
			Update("deleted_at", nil).Error
	})
}

// ArchiveWork soft-deletes a single work without touching its parent.
func ArchiveWork(db *gorm.DB, workID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var w catalog.Work
		if err := tx.Unscoped().First(&w, "id = ?", workID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return catalog.ErrNotFound
			}
			return err
		}
		if w.DeletedAt.Valid {
			return catalog.ErrAlreadyArchived
		}

		return tx.Model(&catalog.Work{}).
			Where("id = ?", w.ID).
			Update("deleted_at", time.Now().UTC()).Error
	})
}

// RestoreWork clears the archive marker on a single work.
func RestoreWork(db *gorm.DB, workID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var w catalog.Work
		if err := tx.Unscoped().First(&w, "id = ?", workID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return catalog.ErrNotFound
			}
			return err
		}
		if !w.DeletedAt.Valid {
			return catalog.ErrNotArchived
		}

		return tx.Unscoped().Model(&catalog.Work{}).
			Where("id = ?", w.ID).
			Update("deleted_at", nil).Error
	})
}
