package handlers

import (
	"net/http"
	"time"

	"workflow-management-api/internal/database"
	"workflow-management-api/internal/models"
	"workflow-management-api/internal/realtime"
	"workflow-management-api/internal/workflow"

	"github.com/gin-gonic/gin"
)

// CreateTaskRequest represents the request payload for creating a task
type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	DocumentIDs []uint     `json:"document_ids"`
}

// UpdateTaskRequest represents the partial update payload for a task
type UpdateTaskRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Status      *models.TaskStatus `json:"status"`
	DueDate     *time.Time         `json:"due_date"`
}

// AssignTaskRequest sets a task's team for the hand-off
type AssignTaskRequest struct {
	TaskID uint `json:"task_id" binding:"required"`
	TeamID uint `json:"team_id" binding:"required"`
}

// UpdateChecklistRequest toggles a checklist item's completion
type UpdateChecklistRequest struct {
	IsCompleted *bool `json:"is_completed" binding:"required"`
}

// CreateChecklistItemRequest adds a checklist child under a task
type CreateChecklistItemRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// CreateTask handles POST /api/application/:application_id/tasks
// Status is fixed to Pending at creation; document ids are linked through
// task_documents in the same call.
func CreateTask(c *gin.Context) {
	applicationID, ok := paramUint(c, "application_id")
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	engine := workflow.NewEngine(database.GetDB())
	task, err := engine.CreateTask(workflow.CreateTaskInput{
		ApplicationID: applicationID,
		Title:         req.Title,
		Description:   req.Description,
		DueDate:       req.DueDate,
		DocumentIDs:   req.DocumentIDs,
	})
	if err != nil {
		respondWorkflowError(c, err, "Failed to create task")
		return
	}

	realtime.GetHub().BroadcastEvent(c.GetUint("user_id"), realtime.Event{
		Type:   realtime.EventTaskCreated,
		TaskID: task.ID,
	})

	c.JSON(http.StatusCreated, task)
}

// GetTasks handles GET /api/application/:application_id/tasks
func GetTasks(c *gin.Context) {
	applicationID, ok := paramUint(c, "application_id")
	if !ok {
		return
	}

	engine := workflow.NewEngine(database.GetDB())
	tasks, err := engine.GetTasks(applicationID)
	if err != nil {
		respondWorkflowError(c, err, "Failed to retrieve tasks")
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// GetTaskDocuments handles GET /api/application/:application_id/tasks/:task_id/documents
func GetTaskDocuments(c *gin.Context) {
	taskID, ok := paramUint(c, "task_id")
	if !ok {
		return
	}

	engine := workflow.NewEngine(database.GetDB())
	docs, err := engine.GetTaskDocuments(taskID)
	if err != nil {
		respondWorkflowError(c, err, "Failed to retrieve documents for the task")
		return
	}

	c.JSON(http.StatusOK, docs)
}

// UpdateTask handles PUT /api/application/:application_id/tasks/:task_id
func UpdateTask(c *gin.Context) {
	taskID, ok := paramUint(c, "task_id")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	engine := workflow.NewEngine(database.GetDB())
	task, err := engine.UpdateTask(taskID, workflow.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondWorkflowError(c, err, "Failed to update task")
		return
	}

	realtime.GetHub().BroadcastEvent(c.GetUint("user_id"), realtime.Event{
		Type:   realtime.EventTaskUpdated,
		TaskID: task.ID,
		Status: string(task.Status),
	})

	c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /api/application/:application_id/tasks/:task_id
// Soft delete only.
func DeleteTask(c *gin.Context) {
	taskID, ok := paramUint(c, "task_id")
	if !ok {
		return
	}

	engine := workflow.NewEngine(database.GetDB())
	if err := engine.DeleteTask(taskID); err != nil {
		respondWorkflowError(c, err, "Failed to delete task")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully", "task_id": taskID})
}

// AssignTaskToTeam handles POST /api/application/:application_id/tasks/assign
// Phase one of the hand-off: the task becomes visible to the team.
func AssignTaskToTeam(c *gin.Context) {
	var req AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	engine := workflow.NewEngine(database.GetDB())
	task, err := engine.AssignTaskToTeam(req.TaskID, req.TeamID)
	if err != nil {
		respondWorkflowError(c, err, "Failed to assign task to team")
		return
	}

	realtime.GetHub().BroadcastEvent(c.GetUint("user_id"), realtime.Event{
		Type:   realtime.EventTaskAssigned,
		TaskID: task.ID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Task assigned to team successfully", "task": task})
}

// GetTasksByTeam handles GET /api/application/teams/:team_id/tasks
func GetTasksByTeam(c *gin.Context) {
	teamID, ok := paramUint(c, "team_id")
	if !ok {
		return
	}

	engine := workflow.NewEngine(database.GetDB())
	tasks, err := engine.GetTasksByTeam(teamID)
	if err != nil {
		respondWorkflowError(c, err, "Failed to retrieve tasks")
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// PickSubtask handles PUT /api/application/:application_id/tasks/:task_id/pick
// Phase two of the hand-off: the calling member claims the subtask named by
// the path id. Exactly one concurrent caller wins; losers get 409.
func PickSubtask(c *gin.Context) {
	subtaskID, ok := paramUint(c, "task_id")
	if !ok {
		return
	}

	memberID := c.GetUint("user_id")
	if memberID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	engine := workflow.NewEngine(database.GetDB())
	sub, err := engine.PickSubtask(subtaskID, memberID)
	if err != nil {
		respondWorkflowError(c, err, "Failed to pick subtask")
		return
	}

	realtime.GetHub().BroadcastEvent(memberID, realtime.Event{
		Type:      realtime.EventSubtaskPicked,
		SubtaskID: sub.ID,
		UserID:    memberID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Subtask picked successfully", "subtask": sub})
}

// CreateSubtask handles POST /api/application/:application_id/tasks/:task_id/subtasks
func CreateSubtask(c *gin.Context) {
	taskID, ok := paramUint(c, "task_id")
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	engine := workflow.NewEngine(database.GetDB())
	sub, err := engine.CreateSubtask(workflow.CreateSubtaskInput{
		TaskID:      taskID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondWorkflowError(c, err, "Failed to create subtask")
		return
	}

	c.JSON(http.StatusCreated, sub)
}

// CreateChecklistItem handles POST /api/application/:application_id/tasks/:task_id/checklist
func CreateChecklistItem(c *gin.Context) {
	taskID, ok := paramUint(c, "task_id")
	if !ok {
		return
	}

	var req CreateChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	engine := workflow.NewEngine(database.GetDB())
	item, err := engine.CreateChecklistItem(taskID, req.Title, req.Description)
	if err != nil {
		respondWorkflowError(c, err, "Failed to create checklist item")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateChecklistItem handles PUT /api/application/:application_id/tasks/:task_id/checklist
func UpdateChecklistItem(c *gin.Context) {
	taskID, ok := paramUint(c, "task_id")
	if !ok {
		return
	}

	var req UpdateChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	engine := workflow.NewEngine(database.GetDB())
	item, err := engine.UpdateChecklistItem(taskID, *req.IsCompleted)
	if err != nil {
		respondWorkflowError(c, err, "Failed to update checklist item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Checklist item updated successfully", "task": item})
}

// GetChecklistItems handles GET /api/application/:application_id/tasks/:task_id/checklist
func GetChecklistItems(c *gin.Context) {
	taskID, ok := paramUint(c, "task_id")
	if !ok {
		return
	}

	engine := workflow.NewEngine(database.GetDB())
	items, err := engine.GetChecklistItems(taskID)
	if err != nil {
		respondWorkflowError(c, err, "Failed to retrieve checklist items")
		return
	}

	c.JSON(http.StatusOK, items)
}
