package documents

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"archive-app/database"
	"archive-app/internal/domain/catalog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func parseDate(s string) (*time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ------------------------------
// GET /documents
// ------------------------------
func GetDocuments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	f := ListFilter{
		Page:      page,
		PageSize:  size,
		Category:  c.DefaultQuery("category", "All"),
		Search:    c.Query("search"),
		Keyword:   c.Query("keyword"),
		SortField: c.Query("sort"),
		SortOrder: c.Query("order"),
		DocTypes:  c.DefaultQuery("docTypes", DocTypesAll),
	}

	res, err := List(database.DB, f)
	if err != nil {
		var ve *catalog.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
			return
		}
		// Listing degrades to an empty page with an error flag; the catalog
		// page must stay up even when the store misbehaves.
		c.JSON(http.StatusOK, gin.H{
			"items":       []ListItem{},
			"total_count": 0,
			"total_pages": 0,
			"page":        page,
			"page_size":   size,
			"error":       "Failed to load documents",
		})
		return
	}

	c.JSON(http.StatusOK, res)
}

// ------------------------------
// GET /documents/count-by-category
// ------------------------------
func GetCategoryCounts(c *gin.Context) {
	counts, err := CountByCategory(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count documents"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"counts": counts})
}

// ------------------------------
// POST /works
// ------------------------------
func CreateWork(c *gin.Context) {
	var req CreateWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !catalog.KnownCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
		return
	}

	var pubDate *time.Time
	if req.PublicationDate != nil && *req.PublicationDate != "" {
		d, err := parseDate(*req.PublicationDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "publication_date must be YYYY-MM-DD"})
			return
		}
		pubDate = d
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		authors, err := upsertAuthors(tx, req.Authors)
		if err != nil {
			return err
		}
		topics, err := upsertTopics(tx, req.Topics)
		if err != nil {
			return err
		}

		w := catalog.Work{
			Title:           req.Title,
			Description:     req.Description,
			Category:        catalog.Canonical(req.Category),
			PublicationDate: pubDate,
			Volume:          req.Volume,
			IssueNumber:     req.IssueNumber,
			IsPublic:        isPublic,
			Authors:         authors,
			Topics:          topics,
		}
		if err := tx.Create(&w).Error; err != nil {
			return err
		}

		c.JSON(http.StatusCreated, gin.H{"id": w.ID})
		return nil
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create work", "details": err.Error()})
	}
}

// ------------------------------
// GET /works/:id
// ------------------------------
func GetWorkByID(c *gin.Context) {
	id := c.Param("id")

	var w catalog.Work
	err := database.DB.
		Preload("Authors").
		Preload("Topics").
		First(&w, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Work not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load work"})
		return
	}

	c.JSON(http.StatusOK, w)
}

// UpdateWorkRecord applies a partial update to a work. While the work is
// attached to a volume, a category change that disagrees with the parent's
// category is refused: it would manufacture the cross-category child state
// the attach path rejects.
func UpdateWorkRecord(db *gorm.DB, id string, req UpdateWorkRequest) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var w catalog.Work
		if err := tx.First(&w, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return catalog.ErrNotFound
			}
			return err
		}

		updates := map[string]interface{}{}
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Category != nil {
			newCat := catalog.Canonical(*req.Category)
			if w.CompiledParentID != nil && newCat != catalog.Canonical(w.Category) {
				var parent catalog.Volume
				if err := tx.Unscoped().First(&parent, "id = ?", *w.CompiledParentID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return fmt.Errorf("%w: work %s claims missing parent %s",
							catalog.ErrConsistency, w.ID, *w.CompiledParentID)
					}
					return err
				}
				if newCat != catalog.Canonical(parent.Category) {
					return catalog.NewValidationError("category",
						"work is attached to a "+catalog.Canonical(parent.Category)+" volume")
				}
			}
			updates["category"] = newCat
		}
		if req.PublicationDate != nil {
			if *req.PublicationDate == "" {
				updates["publication_date"] = nil
			} else {
				d, err := parseDate(*req.PublicationDate)
				if err != nil {
					return catalog.NewValidationError("publication_date", "must be YYYY-MM-DD")
				}
				updates["publication_date"] = d
			}
		}
		if req.Volume != nil {
			updates["volume"] = *req.Volume
		}
		if req.IssueNumber != nil {
			updates["issue_number"] = *req.IssueNumber
		}
		if req.IsPublic != nil {
			updates["is_public"] = *req.IsPublic
		}
		if len(updates) > 0 {
			if err := tx.Model(&catalog.Work{}).Where("id = ?", w.ID).Updates(updates).Error; err != nil {
				return err
			}
		}

		if req.Authors != nil {
			authors, err := upsertAuthors(tx, req.Authors)
			if err != nil {
				return err
			}
			if err := tx.Model(&w).Association("Authors").Replace(authors); err != nil {
				return err
			}
		}
		if req.Topics != nil {
			topics, err := upsertTopics(tx, req.Topics)
			if err != nil {
				return err
			}
			if err := tx.Model(&w).Association("Topics").Replace(topics); err != nil {
				return err
			}
		}

		return nil
	})
}

// ------------------------------
// PUT /works/:id
// ------------------------------
func UpdateWork(c *gin.Context) {
	id := c.Param("id")

	var req UpdateWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Category != nil && !catalog.KnownCategory(*req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
		return
	}

	if err := UpdateWorkRecord(database.DB, id, req); err != nil {
		var ve *catalog.ValidationError
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Work not found"})
		case errors.As(err, &ve):
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
		case errors.Is(err, catalog.ErrConsistency):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update work", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ------------------------------
// DELETE /works/:id/permanent
// ------------------------------
func HardDeleteWork(c *gin.Context) {
	id := c.Param("id")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var w catalog.Work
		if err := tx.Unscoped().First(&w, "id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Exec("DELETE FROM work_authors WHERE work_id = ?", w.ID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM work_topics WHERE work_id = ?", w.ID).Error; err != nil {
			return err
		}
		if err := tx.Where("work_id = ?", w.ID).Delete(&catalog.VolumeItem{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&catalog.Work{}, "id = ?", w.ID).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Work not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete work"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
