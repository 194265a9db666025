package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"workflow-management-api/internal/database"
	"workflow-management-api/internal/models"
	"workflow-management-api/internal/realtime"
	"workflow-management-api/internal/workflow"

	"github.com/gin-gonic/gin"
)

// CreateApplicationRequest represents the request payload for creating an application
type CreateApplicationRequest struct {
	ClientID         uint   `json:"client_id" binding:"required"`
	DocumentPath     string `json:"document_path"`
	HardFilePosition string `json:"hard_file_position"`
}

// UpdateApplicationRequest represents the partial update payload
type UpdateApplicationRequest struct {
	Status           *models.ApplicationStatus `json:"status"`
	DocumentPath     *string                   `json:"document_path"`
	HardFilePosition *string                   `json:"hard_file_position"`
}

func paramUint(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a numeric id"})
		return 0, false
	}
	return uint(v), true
}

// respondWorkflowError maps engine failures onto the HTTP taxonomy: 404 for
// missing entities, 409 for state-machine or race violations, 400 for bad
// values, 500 otherwise.
func respondWorkflowError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, workflow.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Entity not found"})
	case errors.Is(err, workflow.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "Invalid status transition"})
	case errors.Is(err, workflow.ErrAlreadyPicked):
		c.JSON(http.StatusConflict, gin.H{"error": "Subtask already picked"})
	case errors.Is(err, workflow.ErrChecklistCycle):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Checklist parent would create a cycle"})
	case errors.Is(err, workflow.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// CreateApplication handles POST /api/application/applications
func CreateApplication(c *gin.Context) {
	var req CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	engine := workflow.NewEngine(database.GetDB())
	app, err := engine.CreateApplication(workflow.CreateApplicationInput{
		ClientID:         req.ClientID,
		DocumentPath:     req.DocumentPath,
		HardFilePosition: req.HardFilePosition,
	})
	if err != nil {
		respondWorkflowError(c, err, "Failed to create application")
		return
	}

	c.JSON(http.StatusCreated, app)
}

// GetApplication handles GET /api/application/applications/:application_id
func GetApplication(c *gin.Context) {
	id, ok := paramUint(c, "application_id")
	if !ok {
		return
	}

	engine := workflow.NewEngine(database.GetDB())
	app, err := engine.GetApplication(id)
	if err != nil {
		respondWorkflowError(c, err, "Failed to retrieve application")
		return
	}

	c.JSON(http.StatusOK, app)
}

// UpdateApplication handles PUT /api/application/applications/:application_id
func UpdateApplication(c *gin.Context) {
	id, ok := paramUint(c, "application_id")
	if !ok {
		return
	}

	var req UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	engine := workflow.NewEngine(database.GetDB())
	app, err := engine.UpdateApplication(id, workflow.UpdateApplicationInput{
		Status:           req.Status,
		DocumentPath:     req.DocumentPath,
		HardFilePosition: req.HardFilePosition,
	})
	if err != nil {
		respondWorkflowError(c, err, "Failed to update application")
		return
	}

	c.JSON(http.StatusOK, app)
}

// DeleteApplication handles DELETE /api/application/applications/:application_id
// Applications are soft-deleted only.
func DeleteApplication(c *gin.Context) {
	id, ok := paramUint(c, "application_id")
	if !ok {
		return
	}

	engine := workflow.NewEngine(database.GetDB())
	if err := engine.DeleteApplication(id); err != nil {
		respondWorkflowError(c, err, "Failed to delete application")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application deleted successfully"})
}

// SubmitToManager handles PUT /api/application/applications/:application_id/submit
func SubmitToManager(c *gin.Context) {
	id, ok := paramUint(c, "application_id")
	if !ok {
		return
	}

	engine := workflow.NewEngine(database.GetDB())
	app, err := engine.SubmitToManager(id)
	if err != nil {
		respondWorkflowError(c, err, "Failed to submit application to manager")
		return
	}

	realtime.GetHub().BroadcastEvent(c.GetUint("user_id"), realtime.Event{
		Type:          realtime.EventApplicationMoved,
		ApplicationID: app.ID,
		Status:        string(app.Status),
	})

	c.JSON(http.StatusOK, gin.H{"message": "Application submitted to manager", "application": app})
}

// HandoverToClient handles PUT /api/application/applications/:application_id/handover
func HandoverToClient(c *gin.Context) {
	id, ok := paramUint(c, "application_id")
	if !ok {
		return
	}

	engine := workflow.NewEngine(database.GetDB())
	app, err := engine.HandoverToClient(id)
	if err != nil {
		respondWorkflowError(c, err, "Failed to hand over application")
		return
	}

	realtime.GetHub().BroadcastEvent(c.GetUint("user_id"), realtime.Event{
		Type:          realtime.EventApplicationMoved,
		ApplicationID: app.ID,
		Status:        string(app.Status),
	})

	c.JSON(http.StatusOK, gin.H{"message": "Application handed over to client", "application": app})
}

// CheckProgress handles GET /api/application/clients/:client_id
func CheckProgress(c *gin.Context) {
	clientID, ok := paramUint(c, "client_id")
	if !ok {
		return
	}

	engine := workflow.NewEngine(database.GetDB())
	apps, err := engine.CheckProgress(clientID)
	if err != nil {
		respondWorkflowError(c, err, "Failed to check progress")
		return
	}

	c.JSON(http.StatusOK, apps)
}
