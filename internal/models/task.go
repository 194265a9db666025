package models

import (
	"time"

	"gorm.io/gorm"
)

// TaskStatus represents the status of a task or subtask
type TaskStatus string

const (
	StatusPending    TaskStatus = "Pending"
	StatusInProgress TaskStatus = "In Progress"
	StatusCompleted  TaskStatus = "Completed"
)

// IsValid reports whether s is one of the known task statuses.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// Task is a unit of work under an application. A task with ParentID set and
// IsChecklist=true is a checklist item of its parent task: the hierarchy is a
// single self-referential adjacency list, not a separate entity.
type Task struct {
	ID            uint           `json:"task_id" gorm:"primaryKey"`
	ApplicationID *uint          `json:"application_id" gorm:"column:application_id;index"`
	Title         string         `json:"title" gorm:"not null"`
	Description   string         `json:"description"`
	Status        TaskStatus     `json:"status" gorm:"not null;default:'Pending'"`
	DueDate       *time.Time     `json:"due_date" gorm:"column:due_date"`
	TeamID        *uint          `json:"team_id" gorm:"column:team_id;index"`
	ParentID      *uint          `json:"parent_id" gorm:"column:parent_id;index"`
	IsChecklist   bool           `json:"is_checklist" gorm:"default:false"`
	IsCompleted   bool           `json:"is_completed" gorm:"default:false"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name for Task Model
func (Task) TableName() string {
	return "tasks"
}

// Subtask is a pickable unit of work under a task. AssignedTo stays NULL
// until exactly one team member claims it.
type Subtask struct {
	ID          uint           `json:"subtask_id" gorm:"primaryKey"`
	TaskID      uint           `json:"task_id" gorm:"column:task_id;index"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description"`
	AssignedTo  *uint          `json:"assigned_to" gorm:"column:assigned_to"`
	Status      TaskStatus     `json:"status" gorm:"not null;default:'Pending'"`
	DueDate     *time.Time     `json:"due_date" gorm:"column:due_date"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name for Subtask Model
func (Subtask) TableName() string {
	return "subtasks"
}
