package handlers

import (
	"errors"
	"net/http"

	"workflow-management-api/internal/database"
	"workflow-management-api/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Client self-service endpoints. Clients are not staff: their credential
// only proves account ownership, it grants no workflow role.

// RegisterAccountRequest represents the client registration payload
type RegisterAccountRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Password string `json:"password" binding:"required"`
}

// AccountLoginRequest represents the client login payload
type AccountLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordRequest starts a reset for a client account
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// RegisterAccount handles POST /api/account/register
func RegisterAccount(c *gin.Context) {
	var req RegisterAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	client := models.Client{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		PasswordHash: string(hash),
	}
	if err := database.GetDB().Create(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register client"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"client_id": client.ID})
}

// AccountLogin handles POST /api/account/login
func AccountLogin(c *gin.Context) {
	var req AccountLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var client models.Client
	err := database.GetDB().Where("email = ?", req.Email).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		}
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(client.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Login successful",
		"client_id": client.ID,
	})
}

// ForgotPassword handles POST /api/account/forgot-password. The actual reset
// mail goes through the notification channel; here we only confirm the
// account exists.
func ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var client models.Client
	err := database.GetDB().Where("email = ?", req.Email).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Email not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process forgot password request"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset link sent to your email"})
}

// DeleteAccount handles DELETE /api/account/:client_id (soft delete).
func DeleteAccount(c *gin.Context) {
	clientID, ok := paramUint(c, "client_id")
	if !ok {
		return
	}

	res := database.GetDB().Delete(&models.Client{}, clientID)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}
