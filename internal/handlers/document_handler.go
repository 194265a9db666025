package handlers

import (
	"errors"
	"net/http"

	"workflow-management-api/internal/database"
	"workflow-management-api/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Documents are metadata records; the blob bytes live in the blob store and
// FilePath is its opaque key.

// CreateDocumentRequest registers a stored blob under an application
type CreateDocumentRequest struct {
	ApplicationID    *uint  `json:"application_id"`
	FilePath         string `json:"file_path" binding:"required"`
	HardFilePosition string `json:"hard_file_position"`
}

// CreateDocument handles POST /api/documents
func CreateDocument(c *gin.Context) {
	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc := models.Document{
		ApplicationID:    req.ApplicationID,
		FilePath:         req.FilePath,
		HardFilePosition: req.HardFilePosition,
	}
	if err := database.GetDB().Create(&doc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register document"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"document_id": doc.ID})
}

// GetDocument handles GET /api/documents/:document_id
func GetDocument(c *gin.Context) {
	documentID, ok := paramUint(c, "document_id")
	if !ok {
		return
	}

	var doc models.Document
	err := database.GetDB().First(&doc, documentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve document"})
		}
		return
	}

	c.JSON(http.StatusOK, doc)
}

// DeleteDocument handles DELETE /api/documents/:document_id (soft delete,
// the blob itself is the blob store's problem).
func DeleteDocument(c *gin.Context) {
	documentID, ok := paramUint(c, "document_id")
	if !ok {
		return
	}

	res := database.GetDB().Delete(&models.Document{}, documentID)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete document"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted successfully"})
}
