package handlers

import (
	"errors"
	"net/http"

	"workflow-management-api/internal/database"
	"workflow-management-api/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateClientRequest represents the staff-side client creation payload
type CreateClientRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateClientRequest is a partial update
type UpdateClientRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// CreateClient handles POST /api/clients
func CreateClient(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client := models.Client{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := database.GetDB().Create(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create client"})
		return
	}

	c.JSON(http.StatusCreated, client)
}

// GetClients handles GET /api/clients
func GetClients(c *gin.Context) {
	var clients []models.Client
	if err := database.GetDB().Find(&clients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve clients"})
		return
	}
	c.JSON(http.StatusOK, clients)
}

// GetClientByID handles GET /api/clients/:client_id
func GetClientByID(c *gin.Context) {
	clientID, ok := paramUint(c, "client_id")
	if !ok {
		return
	}

	var client models.Client
	err := database.GetDB().First(&client, clientID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve client"})
		}
		return
	}

	c.JSON(http.StatusOK, client)
}

// UpdateClient handles PUT /api/clients/:client_id
func UpdateClient(c *gin.Context) {
	clientID, ok := paramUint(c, "client_id")
	if !ok {
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var client models.Client
	err := database.GetDB().First(&client, clientID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve client"})
		}
		return
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Address != nil {
		client.Address = *req.Address
	}

	if err := database.GetDB().Save(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update client"})
		return
	}

	c.JSON(http.StatusOK, client)
}

// DeleteClient handles DELETE /api/clients/:client_id (soft delete).
func DeleteClient(c *gin.Context) {
	clientID, ok := paramUint(c, "client_id")
	if !ok {
		return
	}

	res := database.GetDB().Delete(&models.Client{}, clientID)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete client"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}
