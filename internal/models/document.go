package models

import (
	"time"

	"gorm.io/gorm"
)

// Document owns an opaque blob path; the file bytes themselves live in the
// blob store, the database only keys them by document id.
type Document struct {
	ID               uint           `json:"document_id" gorm:"primaryKey"`
	ApplicationID    *uint          `json:"application_id" gorm:"column:application_id;index"`
	FilePath         string         `json:"file_path" gorm:"not null"`
	HardFilePosition string         `json:"hard_file_position"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name for Document Model
func (Document) TableName() string {
	return "documents"
}

// TaskDocument is the many-to-many join between tasks and documents.
type TaskDocument struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	TaskID     uint      `json:"task_id" gorm:"column:task_id;index"`
	DocumentID uint      `json:"document_id" gorm:"column:document_id;index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name for TaskDocument Model
func (TaskDocument) TableName() string {
	return "task_documents"
}
