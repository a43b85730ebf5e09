package archives

import (
	"errors"
	"net/http"

	"archive-app/database"
	"archive-app/internal/domain/catalog"

	"github.com/gin-gonic/gin"
)

type ArchiveRequest struct {
	CompiledDocumentID string `json:"compiled_document_id" binding:"required"`
}

func respondArchiveError(c *gin.Context, err error, subject string) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": subject + " not found"})
	case errors.Is(err, catalog.ErrAlreadyArchived):
		c.JSON(http.StatusConflict, gin.H{"error": subject + " is already archived"})
	case errors.Is(err, catalog.ErrNotArchived):
		c.JSON(http.StatusConflict, gin.H{"error": subject + " is not archived"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Archive operation failed"})
	}
}

// ------------------------------
// POST /archives
// ------------------------------
func ArchiveCompiled(c *gin.Context) {
	var req ArchiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := Archive(database.DB, req.CompiledDocumentID); err != nil {
		respondArchiveError(c, err, "Compiled document")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "archived"})
}

// ------------------------------
// DELETE /archives/:id  (restore)
// ------------------------------
func RestoreCompiled(c *gin.Context) {
	id := c.Param("id")

	if err := Restore(database.DB, id); err != nil {
		respondArchiveError(c, err, "Compiled document")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "restored"})
}

// ------------------------------
// DELETE /works/:id  (soft archive)
// ------------------------------
func ArchiveWorkByID(c *gin.Context) {
	id := c.Param("id")

	if err := ArchiveWork(database.DB, id); err != nil {
		respondArchiveError(c, err, "Work")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "archived"})
}

// ------------------------------
// POST /works/:id/restore
// ------------------------------
func RestoreWorkByID(c *gin.Context) {
	id := c.Param("id")

	if err := RestoreWork(database.DB, id); err != nil {
		respondArchiveError(c, err, "Work")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "restored"})
}
