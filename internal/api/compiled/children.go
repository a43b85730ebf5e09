package compiled

import (
	"errors"

	"archive-app/internal/domain/catalog"

	"gorm.io/gorm"
)

// ListChildren returns the works legitimately belonging to the volume: only
// joined works whose category matches the one the volume's category demands,
// so cross-category rows in the join table never leak out. Archived children
// remain enumerable here; the catalog listing is what hides them.
func ListChildren(db *gorm.DB, volumeID string) ([]catalog.Work, error) {
	var v catalog.Volume
	if err := db.Unscoped().First(&v, "id = ?", volumeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrNotFound
		}
		return nil, err
	}

	want := catalog.Canonical(v.Category)

	works := []catalog.Work{}
	err := db.Unscoped().
		Joins("JOIN volume_items vi ON vi.work_id = works.id").
		Where("vi.volume_id = ? AND UPPER(works.category) = ?", v.ID, want).
		Order("works.publication_date DESC NULLS LAST, works.id ASC").
		Preload("Authors").
		Preload("Topics").
		Find(&works).Error
	if err != nil {
		return nil, err
	}

	return works, nil
}
