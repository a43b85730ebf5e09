package documents

import (
	"archive-app/internal/domain/catalog"

	"gorm.io/gorm"
)

// CountByCategory sums non-archived works and volumes per canonical category
// name, so rows recorded as "Synergy" and "SYNERGY" land in one bucket.
func CountByCategory(db *gorm.DB) (map[string]int64, error) {
	type row struct {
		Category string
		N        int64
	}

	counts := map[string]int64{}

	var workRows []row
	if err := db.Model(&catalog.Work{}).
		Select("category AS category, COUNT(*) AS n").
		Group("category").
		Scan(&workRows).Error; err != nil {
		return nil, err
	}
	for _, r := range workRows {
		counts[catalog.Canonical(r.Category)] += r.N
	}

	var volumeRows []row
	if err := db.Model(&catalog.Volume{}).
		Select("category AS category, COUNT(*) AS n").
		Group("category").
		Scan(&volumeRows).Error; err != nil {
		return nil, err
	}
	for _, r := range volumeRows {
		counts[catalog.Canonical(r.Category)] += r.N
	}

	return counts, nil
}
