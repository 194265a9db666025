package models

import (
	"time"

	"gorm.io/gorm"
)

// ApplicationStatus represents the workflow stage of an application
type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "Pending"
	ApplicationSubmitted ApplicationStatus = "Submitted to Manager"
	ApplicationApproved  ApplicationStatus = "Approved"
	ApplicationRejected  ApplicationStatus = "Rejected"
	ApplicationHandover  ApplicationStatus = "Handover to Client"
)

// Application is a client's end-to-end case progressing through the workflow.
// Applications are only ever soft-deleted.
type Application struct {
	ID               uint              `json:"application_id" gorm:"primaryKey"`
	ClientID         uint              `json:"client_id" gorm:"column:client_id;index"`
	SubmittedAt      time.Time         `json:"submitted_at"`
	Status           ApplicationStatus `json:"status" gorm:"not null;default:'Pending'"`
	DocumentPath     string            `json:"document_path"`
	HardFilePosition string            `json:"hard_file_position"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	DeletedAt        gorm.DeletedAt    `json:"-" gorm:"index"`
}

// TableName specifies the table name for Application Model
func (Application) TableName() string {
	return "applications"
}
