package compiled

import (
	"errors"
	"fmt"
	"net/http"

	"archive-app/database"
	"archive-app/internal/domain/catalog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// applySecondaryField blanks the inactive secondary identifier column so
// only the one the category policy selects is ever stored.
func applySecondaryField(v *catalog.Volume) {
	if catalog.SecondaryField(v.Category) == catalog.SecondaryDepartment {
		v.IssueNumber = ""
	} else {
		v.Department = ""
	}
}

func childCount(db *gorm.DB, volumeID string) (int64, error) {
	var n int64
	err := db.Model(&catalog.VolumeItem{}).Where("volume_id = ?", volumeID).Count(&n).Error
	return n, err
}

// ------------------------------
// POST /compiled-documents
// ------------------------------
func CreateCompiled(c *gin.Context) {
	var req CreateCompiledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !catalog.IsCompiled(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category must be CONFLUENCE or SYNERGY"})
		return
	}

	v := catalog.Volume{
		Category:         catalog.Canonical(req.Category),
		VolumeNumber:     req.VolumeNumber,
		StartYear:        req.StartYear,
		EndYear:          req.EndYear,
		IssueNumber:      req.IssueNumber,
		Department:       req.Department,
		Foreword:         req.Foreword,
		AbstractForeword: req.AbstractForeword,
	}
	applySecondaryField(&v)

	if err := database.DB.Create(&v).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create compiled document", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, toCompiledDTO(v, 0))
}

// ------------------------------
// GET /compiled-documents/:id
// ------------------------------
func GetCompiledByID(c *gin.Context) {
	id := c.Param("id")

	var v catalog.Volume
	if err := database.DB.First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Compiled document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load compiled document"})
		return
	}

	n, err := childCount(database.DB, v.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load compiled document"})
		return
	}

	c.JSON(http.StatusOK, toCompiledDTO(v, n))
}

// UpdateVolume applies a partial update to a volume. A category change is
// refused while any works are attached: re-labeling the container would put
// every join row into the cross-category state the attach path rejects.
func UpdateVolume(db *gorm.DB, id string, req UpdateCompiledRequest) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var v catalog.Volume
		if err := tx.First(&v, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return catalog.ErrNotFound
			}
			return err
		}

		if req.Category != nil {
			newCat := catalog.Canonical(*req.Category)
			if newCat != catalog.Canonical(v.Category) {
				n, err := childCount(tx, v.ID)
				if err != nil {
					return err
				}
				if n > 0 {
					return catalog.NewValidationError("category",
						fmt.Sprintf("cannot change category while %d attached works remain", n))
				}
			}
			v.Category = newCat
		}
		if req.VolumeNumber != nil {
			v.VolumeNumber = *req.VolumeNumber
		}
		if req.StartYear != nil {
			v.StartYear = req.StartYear
		}
		if req.EndYear != nil {
			v.EndYear = req.EndYear
		}
		if req.IssueNumber != nil {
			v.IssueNumber = *req.IssueNumber
		}
		if req.Department != nil {
			v.Department = *req.Department
		}
		if req.Foreword != nil {
			v.Foreword = *req.Foreword
		}
		if req.AbstractForeword != nil {
			v.AbstractForeword = *req.AbstractForeword
		}
		applySecondaryField(&v)

		return tx.Save(&v).Error
	})
}

// ------------------------------
// PUT /compiled-documents/:id
// ------------------------------
func UpdateCompiled(c *gin.Context) {
	id := c.Param("id")

	var req UpdateCompiledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Category != nil && !catalog.IsCompiled(*req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category must be CONFLUENCE or SYNERGY"})
		return
	}

	if err := UpdateVolume(database.DB, id, req); err != nil {
		var ve *catalog.ValidationError
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Compiled document not found"})
		case errors.As(err, &ve):
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update compiled document", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ------------------------------
// GET /compiled-documents/:id/children
// ------------------------------
func GetChildren(c *gin.Context) {
	id := c.Param("id")

	works, err := ListChildren(database.DB, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Compiled document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load children"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": works})
}

// ------------------------------
// POST /compiled-documents/:id/items
// ------------------------------
func AttachWorkToCompiled(c *gin.Context) {
	id := c.Param("id")

	var req AttachWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := AttachWork(database.DB, id, req.WorkID); err != nil {
		var ve *catalog.ValidationError
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		case errors.As(err, &ve):
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
		case errors.Is(err, catalog.ErrConsistency):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach work"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "attached"})
}

// ------------------------------
// DELETE /compiled-documents/:id/items/:workId
// ------------------------------
func DetachWorkFromCompiled(c *gin.Context) {
	id := c.Param("id")
	workID := c.Param("workId")

	if err := DetachWork(database.DB, id, workID); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Work is not attached to this volume"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to detach work"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "detached"})
}
