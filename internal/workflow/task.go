package workflow

import (
	"errors"
	"fmt"
	"time"

	"workflow-management-api/internal/models"

	"gorm.io/gorm"
)

// CreateTaskInput carries the fields for a new task. DocumentIDs are linked
// through task_documents in the same call.
type CreateTaskInput struct {
	ApplicationID uint
	Title         string
	Description   string
	DueDate       *time.Time
	DocumentIDs   []uint
}

// CreateTask creates a task at Pending under an application and links the
// given documents.
func (e *Engine) CreateTask(in CreateTaskInput) (*models.Task, error) {
	if _, err := e.GetApplication(in.ApplicationID); err != nil {
		return nil, err
	}
	task := models.Task{
		ApplicationID: &in.ApplicationID,
		Title:         in.Title,
		Description:   in.Description,
		Status:        models.StatusPending,
		DueDate:       in.DueDate,
	}
	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&task).Error; err != nil {
			return err
		}
		for _, docID := range in.DocumentIDs {
			link := models.TaskDocument{TaskID: task.ID, DocumentID: docID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return &task, nil
}

// GetTask fetches a non-deleted task.
func (e *Engine) GetTask(id uint) (*models.Task, error) {
	var task models.Task
	if err := e.db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &task, nil
}

// TaskWithDocuments pairs a task with the blob paths of its linked documents.
type TaskWithDocuments struct {
	models.Task
	FilePaths []string `json:"file_paths"`
}

// GetTasks lists the non-deleted tasks of an application together with
// their linked document paths.
func (e *Engine) GetTasks(applicationID uint) ([]TaskWithDocuments, error) {
	var tasks []models.Task
	if err := e.db.
		Where("application_id = ?", applicationID).
		Order("created_at asc").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	out := make([]TaskWithDocuments, 0, len(tasks))
	for _, t := range tasks {
		docs, err := e.GetTaskDocuments(t.ID)
		if err != nil {
			return nil, err
		}
		paths := make([]string, 0, len(docs))
		for _, d := range docs {
			paths = append(paths, d.FilePath)
		}
		out = append(out, TaskWithDocuments{Task: t, FilePaths: paths})
	}
	return out, nil
}

// GetTaskDocuments resolves the documents linked to a task.
func (e *Engine) GetTaskDocuments(taskID uint) ([]models.Document, error) {
	var docs []models.Document
	if err := e.db.
		Joins("JOIN task_documents ON task_documents.document_id = documents.id").
		Where("task_documents.task_id = ?", taskID).
		Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("list task documents: %w", err)
	}
	return docs, nil
}

// UpdateTaskInput is a partial update; nil fields are left untouched. Task
// status is deliberately unconstrained beyond enum validity, unlike the
// application state machine.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	DueDate     *time.Time
}

// UpdateTask applies a partial update to a task or checklist item.
func (e *Engine) UpdateTask(id uint, in UpdateTaskInput) (*models.Task, error) {
	task, err := e.GetTask(id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Status != nil {
		if !in.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		task.Status = *in.Status
	}
	if in.DueDate != nil {
		task.DueDate = in.DueDate
	}
	if err := e.db.Save(task).Error; err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// DeleteTask soft-deletes a task or checklist item. Deleting an already
// deleted task yields NotFound, which callers treat as idempotent success or
// failure per endpoint.
func (e *Engine) DeleteTask(id uint) error {
	task, err := e.GetTask(id)
	if err != nil {
		return err
	}
	if err := e.db.Delete(task).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// AssignTaskToTeam is phase one of the hand-off: the task becomes visible to
// the team so its members can pick subtasks.
func (e *Engine) AssignTaskToTeam(taskID, teamID uint) (*models.Task, error) {
	task, err := e.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	task.TeamID = &teamID
	if err := e.db.Save(task).Error; err != nil {
		return nil, fmt.Errorf("assign task: %w", err)
	}
	return task, nil
}

// TeamTask pairs a team task with one of its subtasks for the member view.
type TeamTask struct {
	Task    models.Task    `json:"task"`
	Subtask models.Subtask `json:"subtask"`
}

// GetTasksByTeam lists the subtasks of the team's tasks, joined with their
// owning tasks.
func (e *Engine) GetTasksByTeam(teamID uint) ([]TeamTask, error) {
	var tasks []models.Task
	if err := e.db.
		Where("team_id = ?", teamID).
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list team tasks: %w", err)
	}
	out := make([]TeamTask, 0, len(tasks))
	for _, t := range tasks {
		var subtasks []models.Subtask
		if err := e.db.Where("task_id = ?", t.ID).Find(&subtasks).Error; err != nil {
			return nil, fmt.Errorf("list team subtasks: %w", err)
		}
		for _, s := range subtasks {
			out = append(out, TeamTask{Task: t, Subtask: s})
		}
	}
	return out, nil
}

// CreateChecklistItem creates a checklist child of a task. The child is an
// ordinary task with ParentID set and IsChecklist=true.
func (e *Engine) CreateChecklistItem(parentID uint, title, description string) (*models.Task, error) {
	parent, err := e.GetTask(parentID)
	if err != nil {
		return nil, err
	}
	item := models.Task{
		ApplicationID: parent.ApplicationID,
		Title:         title,
		Description:   description,
		Status:        models.StatusPending,
		ParentID:      &parent.ID,
		IsChecklist:   true,
	}
	if err := e.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create checklist item: %w", err)
	}
	return &item, nil
}

// SetChecklistParent re-parents a task as a checklist item, rejecting any
// assignment that would create a cycle.
func (e *Engine) SetChecklistParent(taskID, parentID uint) (*models.Task, error) {
	task, err := e.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if _, err := e.GetTask(parentID); err != nil {
		return nil, err
	}
	if err := e.checkCycle(taskID, parentID); err != nil {
		return nil, err
	}
	task.ParentID = &parentID
	task.IsChecklist = true
	if err := e.db.Save(task).Error; err != nil {
		return nil, fmt.Errorf("set checklist parent: %w", err)
	}
	return task, nil
}

// checkCycle walks the parent chain upward from candidate; if it reaches
// taskID the assignment would make the task its own descendant. Traversal is
// by index lookup, never through in-memory object graphs.
func (e *Engine) checkCycle(taskID, candidateParent uint) error {
	current := candidateParent
	for {
		if current == taskID {
			return ErrChecklistCycle
		}
		var parent struct{ ParentID *uint }
		err := e.db.Model(&models.Task{}).
			Select("parent_id").
			Where("id = ?", current).
			Scan(&parent).Error
		if err != nil {
			return fmt.Errorf("check cycle: %w", err)
		}
		if parent.ParentID == nil {
			return nil
		}
		current = *parent.ParentID
	}
}

// UpdateChecklistItem toggles a checklist item's completion flag.
func (e *Engine) UpdateChecklistItem(taskID uint, isCompleted bool) (*models.Task, error) {
	task, err := e.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	task.IsCompleted = isCompleted
	if err := e.db.Model(task).Update("is_completed", isCompleted).Error; err != nil {
		return nil, fmt.Errorf("update checklist item: %w", err)
	}
	return task, nil
}

// GetChecklistItems lists the non-deleted checklist children of a task.
func (e *Engine) GetChecklistItems(taskID uint) ([]models.Task, error) {
	var items []models.Task
	if err := e.db.
		Where("parent_id = ? AND is_checklist = ?", taskID, true).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list checklist items: %w", err)
	}
	return items, nil
}
