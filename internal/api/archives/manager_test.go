package archives

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"archive-app/internal/api/compiled"
	"archive-app/internal/api/documents"
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

func seedVolumeWithChildren(t *testing.T, db *gorm.DB) (catalog.Volume, catalog.Work, catalog.Work) {
	t.Helper()

	v := catalog.Volume{ID: "vol-1", Category: "SYNERGY", VolumeNumber: "3", Department: "Engineering"}
	require.NoError(t, db.Create(&v).Error)

	a := catalog.Work{ID: "work-a", Title: "A", Category: "SYNERGY", PublicationDate: date(2021, 6, 1)}
	b := catalog.Work{ID: "work-b", Title: "B", Category: "SYNERGY", PublicationDate: date(2022, 6, 1)}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)

	require.NoError(t, db.Create(&catalog.VolumeItem{VolumeID: v.ID, WorkID: a.ID}).Error)
	require.NoError(t, db.Create(&catalog.VolumeItem{VolumeID: v.ID, WorkID: b.ID}).Error)

	// Only one child carries the denormalized pointer; the other simulates
	// drift the cascade must repair.
	require.NoError(t, db.Model(&catalog.Work{}).Where("id = ?", a.ID).
		Update("compiled_parent_id", v.ID).Error)

	return v, a, b
}

func TestArchive_CascadesToChildren(t *testing.T) {
	db := newTestDB(t)
	v, a, b := seedVolumeWithChildren(t, db)

	require.NoError(t, Archive(db, v.ID))

	var gotV catalog.Volume
	require.NoError(t, db.Unscoped().First(&gotV, "id = ?", v.ID).Error)
	assert.True(t, gotV.DeletedAt.Valid)

	for _, id := range []string{a.ID, b.ID} {
		var w catalog.Work
		require.NoError(t, db.Unscoped().First(&w, "id = ?", id).Error)
		assert.True(t, w.DeletedAt.Valid, "child %s should be archived", id)
		assert.WithinDuration(t, gotV.DeletedAt.Time, w.DeletedAt.Time, time.Second)
		require.NotNil(t, w.CompiledParentID, "child %s should have parent repaired", id)
		assert.Equal(t, v.ID, *w.CompiledParentID)
	}
}

func TestArchive_NotFound(t *testing.T) {
	db := newTestDB(t)
	assert.ErrorIs(t, Archive(db, "missing"), catalog.ErrNotFound)
}

func TestArchive_AlreadyArchived(t *testing.T) {
	db := newTestDB(t)
	v, a, _ := seedVolumeWithChildren(t, db)

	require.NoError(t, Archive(db, v.ID))

	var before catalog.Work
	require.NoError(t, db.Unscoped().First(&before, "id = ?", a.ID).Error)

	assert.ErrorIs(t, Archive(db, v.ID), catalog.ErrAlreadyArchived)

	// No partial timestamp drift on the second attempt.
	var after catalog.Work
	require.NoError(t, db.Unscoped().First(&after, "id = ?", a.ID).Error)
	assert.Equal(t, before.DeletedAt, after.DeletedAt)
}

func TestArchive_VolumeWithoutChildren(t *testing.T) {
	db := newTestDB(t)
	v := catalog.Volume{ID: "vol-empty", Category: "CONFLUENCE"}
	require.NoError(t, db.Create(&v).Error)

	require.NoError(t, Archive(db, v.ID))

	var got catalog.Volume
	require.NoError(t, db.Unscoped().First(&got, "id = ?", v.ID).Error)
	assert.True(t, got.DeletedAt.Valid)
}

func TestRestore_DoesNotTouchChildren(t *testing.T) {
	db := newTestDB(t)
	v, a, b := seedVolumeWithChildren(t, db)

	require.NoError(t, Archive(db, v.ID))
	require.NoError(t, Restore(db, v.ID))

	var gotV catalog.Volume
	require.NoError(t, db.First(&gotV, "id = ?", v.ID).Error)
	assert.False(t, gotV.DeletedAt.Valid)

	// Children stay archived; restore only cascades on archive.
	for _, id := range []string{a.ID, b.ID} {
		var w catalog.Work
		require.NoError(t, db.Unscoped().First(&w, "id = ?", id).Error)
		assert.True(t, w.DeletedAt.Valid)
	}
}

func TestRestore_Guards(t *testing.T) {
	db := newTestDB(t)
	v, _, _ := seedVolumeWithChildren(t, db)

	assert.ErrorIs(t, Restore(db, "missing"), catalog.ErrNotFound)
	assert.ErrorIs(t, Restore(db, v.ID), catalog.ErrNotArchived)
}

func TestArchiveWork_LeavesParentAlone(t *testing.T) {
	db := newTestDB(t)
	v, a, _ := seedVolumeWithChildren(t, db)

	require.NoError(t, ArchiveWork(db, a.ID))

	var w catalog.Work
	require.NoError(t, db.Unscoped().First(&w, "id = ?", a.ID).Error)
	assert.True(t, w.DeletedAt.Valid)

	var gotV catalog.Volume
	require.NoError(t, db.First(&gotV, "id = ?", v.ID).Error)
	assert.False(t, gotV.DeletedAt.Valid)

	assert.ErrorIs(t, ArchiveWork(db, a.ID), catalog.ErrAlreadyArchived)
	assert.ErrorIs(t, ArchiveWork(db, "missing"), catalog.ErrNotFound)
}

func TestRestoreWork(t *testing.T) {
	db := newTestDB(t)
	_, a, _ := seedVolumeWithChildren(t, db)

	assert.ErrorIs(t, RestoreWork(db, a.ID), catalog.ErrNotArchived)
	require.NoError(t, ArchiveWork(db, a.ID))
	require.NoError(t, RestoreWork(db, a.ID))

	var w catalog.Work
	require.NoError(t, db.First(&w, "id = ?", a.ID).Error)
	assert.False(t, w.DeletedAt.Valid)
}

// End-to-end scenario: archive a volume, its children stay enumerable via
// the child resolver, but the catalog listing and the category counts no
// longer see any of them.
func TestArchive_ChildrenRemainEnumerable(t *testing.T) {
	db := newTestDB(t)
	v, a, b := seedVolumeWithChildren(t, db)

	children, err := compiled.ListChildren(db, v.ID)
	require.NoError(t, err)
	require.Len(t, children, 2)
	// publication_date DESC: B (2022) before A (2021)
	assert.Equal(t, b.ID, children[0].ID)
	assert.Equal(t, a.ID, children[1].ID)

	require.NoError(t, Archive(db, v.ID))

	children, err = compiled.ListChildren(db, v.ID)
	require.NoError(t, err)
	require.Len(t, children, 2)
	for _, c := range children {
		assert.True(t, c.DeletedAt.Valid)
	}

	res, err := documents.List(db, documents.ListFilter{Page: 1, PageSize: 50})
	require.NoError(t, err)
	assert.EqualValues(t, 0, res.TotalCount)
	assert.Empty(t, res.Items)

	counts, err := documents.CountByCategory(db)
	require.NoError(t, err)
	assert.Zero(t, counts[catalog.CategorySynergy])
}
