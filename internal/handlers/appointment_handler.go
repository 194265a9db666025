package handlers

import (
	"errors"
	"net/http"
	"time"

	"workflow-management-api/internal/database"
	"workflow-management-api/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateAppointmentRequest represents the payload for booking an appointment.
// When ReminderTime and SubtaskID are set a reminder is scheduled in the
// same call.
type CreateAppointmentRequest struct {
	ClientID        uint       `json:"client_id" binding:"required"`
	UserID          *uint      `json:"user_id"`
	AppointmentTime time.Time  `json:"appointment_time" binding:"required"`
	SubtaskID       *uint      `json:"subtask_id"`
	ReminderTime    *time.Time `json:"reminder_time"`
}

// UpdateAppointmentRequest reschedules an appointment
type UpdateAppointmentRequest struct {
	AppointmentTime time.Time `json:"appointment_time" binding:"required"`
}

// CreateAppointment handles POST /api/appointments
func CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appointment := models.Appointment{
		ClientID:        req.ClientID,
		UserID:          req.UserID,
		AppointmentTime: req.AppointmentTime,
	}

	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&appointment).Error; err != nil {
			return err
		}
		// Automatically schedule a reminder when asked for one.
		if req.ReminderTime != nil && req.SubtaskID != nil {
			reminder := models.Reminder{
				SubtaskID:    *req.SubtaskID,
				ReminderTime: *req.ReminderTime,
			}
			if err := tx.Create(&reminder).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create appointment"})
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

// GetAppointment handles GET /api/appointments/:appointment_id
func GetAppointment(c *gin.Context) {
	appointmentID, ok := paramUint(c, "appointment_id")
	if !ok {
		return
	}

	var appointment models.Appointment
	err := database.GetDB().First(&appointment, appointmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve appointment"})
		}
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// UpdateAppointment handles PUT /api/appointments/:appointment_id
func UpdateAppointment(c *gin.Context) {
	appointmentID, ok := paramUint(c, "appointment_id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res := database.GetDB().Model(&models.Appointment{}).
		Where("id = ?", appointmentID).
		Update("appointment_time", req.AppointmentTime)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update appointment"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment updated successfully"})
}

// DeleteAppointment handles DELETE /api/appointments/:appointment_id (soft delete).
func DeleteAppointment(c *gin.Context) {
	appointmentID, ok := paramUint(c, "appointment_id")
	if !ok {
		return
	}

	res := database.GetDB().Delete(&models.Appointment{}, appointmentID)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete appointment"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted successfully"})
}
