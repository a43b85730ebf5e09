package compiled

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"archive-app/internal/domain/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalog.Author{}, &catalog.Topic{},
		&catalog.Work{}, &catalog.Volume{}, &catalog.VolumeItem{},
	))
	return db
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestListChildren_OrderAndHydration(t *testing.T) {
	db := newTestDB(t)

	v := catalog.Volume{ID: "v1", Category: "SYNERGY", VolumeNumber: "1", Department: "Physics"}
	require.NoError(t, db.Create(&v).Error)

	older := catalog.Work{
		ID: "w-old", Title: "Older", Category: "SYNERGY", PublicationDate: date(2019, 1, 1),
		Authors: []catalog.Author{{FullName: "Grace Hopper"}},
	}
	newer := catalog.Work{
		ID: "w-new", Title: "Newer", Category: "SYNERGY", PublicationDate: date(2023, 1, 1),
		Topics: []catalog.Topic{{Name: "compilers"}},
	}
	undated := catalog.Work{ID: "w-undated", Title: "Undated", Category: "SYNERGY"}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)
	require.NoError(t, db.Create(&undated).Error)

	for _, id := range []string{"w-old", "w-new", "w-undated"} {
		require.NoError(t, db.Create(&catalog.VolumeItem{VolumeID: "v1", WorkID: id}).Error)
	}

	children, err := ListChildren(db, "v1")
	require.NoError(t, err)
	require.Len(t, children, 3)

	// publication_date DESC with missing dates last
	assert.Equal(t, "w-new", children[0].ID)
	assert.Equal(t, "w-old", children[1].ID)
	assert.Equal(t, "w-undated", children[2].ID)

	require.Len(t, children[1].Authors, 1)
	assert.Equal(t, "Grace Hopper", children[1].Authors[0].FullName)
	require.Len(t, children[0].Topics, 1)
	assert.Equal(t, "compilers", children[0].Topics[0].Name)
}

func TestListChildren_FiltersCrossCategoryRows(t *testing.T) {
	db := newTestDB(t)

	v := catalog.Volume{ID: "v1", Category: "SYNERGY", Department: "Physics"}
	require.NoError(t, db.Create(&v).Error)

	good := catalog.Work{ID: "w-good", Title: "Good", Category: "SYNERGY"}
	stray := catalog.Work{ID: "w-stray", Title: "Stray", Category: "CONFLUENCE"}
	require.NoError(t, db.Create(&good).Error)
	require.NoError(t, db.Create(&stray).Error)

	// Both rows exist in the join table; the cross-category one is a data
	// error and must not leak out.
	require.NoError(t, db.Create(&catalog.VolumeItem{VolumeID: "v1", WorkID: "w-good"}).Error)
	require.NoError(t, db.Create(&catalog.VolumeItem{VolumeID: "v1", WorkID: "w-stray"}).Error)

	children, err := ListChildren(db, "v1")
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "w-good", children[0].ID)
}

func TestListChildren_NotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := ListChildren(db, "missing")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestListChildren_EmptyVolume(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&catalog.Volume{ID: "v1", Category: "CONFLUENCE"}).Error)

	children, err := ListChildren(db, "v1")
	require.NoError(t, err)
	assert.Empty(t, children)
}
