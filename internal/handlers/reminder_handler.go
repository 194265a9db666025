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

// CreateReminderRequest schedules a one-shot reminder for a subtask
type CreateReminderRequest struct {
	SubtaskID    uint      `json:"subtask_id" binding:"required"`
	ReminderTime time.Time `json:"reminder_time" binding:"required"`
}

// UpdateReminderRequest reschedules a reminder; nothing else is mutable
type UpdateReminderRequest struct {
	ReminderTime time.Time `json:"reminder_time" binding:"required"`
}

// CreateReminder handles POST /api/reminders
func CreateReminder(c *gin.Context) {
	var req CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var subtask models.Subtask
	if err := database.GetDB().First(&subtask, req.SubtaskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subtask not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reminder"})
		}
		return
	}

	reminder := models.Reminder{
		SubtaskID:    req.SubtaskID,
		ReminderTime: req.ReminderTime,
	}
	if err := database.GetDB().Create(&reminder).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reminder"})
		return
	}

	c.JSON(http.StatusCreated, reminder)
}

// GetSubtaskReminders handles GET /api/subtasks/:subtask_id/reminders
func GetSubtaskReminders(c *gin.Context) {
	subtaskID, ok := paramUint(c, "subtask_id")
	if !ok {
		return
	}

	var reminders []models.Reminder
	if err := database.GetDB().
		Where("subtask_id = ?", subtaskID).
		Order("reminder_time asc").
		Find(&reminders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reminders"})
		return
	}

	c.JSON(http.StatusOK, reminders)
}

// UpdateReminder handles PUT /api/reminders/:reminder_id
func UpdateReminder(c *gin.Context) {
	reminderID, ok := paramUint(c, "reminder_id")
	if !ok {
		return
	}

	var req UpdateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res := database.GetDB().Model(&models.Reminder{}).
		Where("id = ?", reminderID).
		Update("reminder_time", req.ReminderTime)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reminder"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reminder not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reminder updated successfully"})
}

// DeleteReminder handles DELETE /api/reminders/:reminder_id
func DeleteReminder(c *gin.Context) {
	reminderID, ok := paramUint(c, "reminder_id")
	if !ok {
		return
	}

	res := database.GetDB().Delete(&models.Reminder{}, reminderID)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete reminder"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reminder not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reminder deleted successfully"})
}
