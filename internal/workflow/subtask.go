package workflow

import (
	"errors"
	"fmt"
	"time"

	"workflow-management-api/internal/models"

	"gorm.io/gorm"
)

// CreateSubtaskInput carries the fields for a new pickable unit of work.
type CreateSubtaskInput struct {
	TaskID      uint
	Title       string
	Description string
	DueDate     *time.Time
}

// CreateSubtask creates an unassigned subtask under a task.
func (e *Engine) CreateSubtask(in CreateSubtaskInput) (*models.Subtask, error) {
	if _, err := e.GetTask(in.TaskID); err != nil {
		return nil, err
	}
	sub := models.Subtask{
		TaskID:      in.TaskID,
		Title:       in.Title,
		Description: in.Description,
		Status:      models.StatusPending,
		DueDate:     in.DueDate,
	}
	if err := e.db.Create(&sub).Error; err != nil {
		return nil, fmt.Errorf("create subtask: %w", err)
	}
	return &sub, nil
}

// GetSubtask fetches a non-deleted subtask.
func (e *Engine) GetSubtask(id uint) (*models.Subtask, error) {
	var sub models.Subtask
	if err := e.db.First(&sub, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get subtask: %w", err)
	}
	return &sub, nil
}

// PickSubtask is phase two of the hand-off: a member claims a subtask. The
// claim is a single conditional update keyed on assigned_to still being
// NULL, so under concurrent picks at most one caller wins; everyone else
// gets ErrAlreadyPicked and the winner's assignment is untouched.
func (e *Engine) PickSubtask(subtaskID, memberID uint) (*models.Subtask, error) {
	res := e.db.Model(&models.Subtask{}).
		Where("id = ? AND assigned_to IS NULL", subtaskID).
		Updates(map[string]interface{}{
			"assigned_to": memberID,
			"status":      models.StatusInProgress,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("pick subtask: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		sub, err := e.GetSubtask(subtaskID)
		if err != nil {
			return nil, err
		}
		if sub.AssignedTo != nil {
			return nil, ErrAlreadyPicked
		}
		// Zero rows with a NULL assignee means the row is soft-deleted.
		return nil, ErrNotFound
	}
	return e.GetSubtask(subtaskID)
}

// UpdateSubtaskInput is a partial update; nil fields are left untouched.
type UpdateSubtaskInput struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	DueDate     *time.Time
}

// UpdateSubtask applies a partial update. Like tasks, subtask status is only
// validated against the enum, not ordered.
func (e *Engine) UpdateSubtask(id uint, in UpdateSubtaskInput) (*models.Subtask, error) {
	sub, err := e.GetSubtask(id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		sub.Title = *in.Title
	}
	if in.Description != nil {
		sub.Description = *in.Description
	}
	if in.Status != nil {
		if !in.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		sub.Status = *in.Status
	}
	if in.DueDate != nil {
		sub.DueDate = in.DueDate
	}
	if err := e.db.Save(sub).Error; err != nil {
		return nil, fmt.Errorf("update subtask: %w", err)
	}
	return sub, nil
}
