package routes

import (
	"archive-app/internal/api/archives"
	"archive-app/internal/api/compiled"
	"archive-app/internal/api/documents"
	"archive-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Catalog reads
	r.GET("/documents", documents.GetDocuments)
	r.GET("/documents/count-by-category", documents.GetCategoryCounts)
	r.GET("/works/:id", documents.GetWorkByID)
	r.GET("/compiled-documents/:id", compiled.GetCompiledByID)
	r.GET("/compiled-documents/:id/children", compiled.GetChildren)

	// Writes go through input sanitization
	write := r.Group("/")
	write.Use(middleware.SanitizeAndCleanInputMiddleware())

	write.POST("/works", documents.CreateWork)
	write.PUT("/works/:id", documents.UpdateWork)
	write.DELETE("/works/:id", archives.ArchiveWorkByID)
	write.DELETE("/works/:id/permanent", documents.HardDeleteWork)
	write.POST("/works/:id/restore", archives.RestoreWorkByID)

	write.POST("/compiled-documents", compiled.CreateCompiled)
	write.PUT("/compiled-documents/:id", compiled.UpdateCompiled)
	write.POST("/compiled-documents/:id/items", compiled.AttachWorkToCompiled)
	write.DELETE("/compiled-documents/:id/items/:workId", compiled.DetachWorkFromCompiled)

	write.POST("/archives", archives.ArchiveCompiled)
	write.DELETE("/archives/:id", archives.RestoreCompiled)
}
