package models

import (
	"time"

	"gorm.io/gorm"
)

// Reminder is a scheduled one-shot notification tied to a subtask. Once
// created only ReminderTime (reschedule) and Sent (dispatch) ever change;
// Sent flips false to true and never back.
type Reminder struct {
	ID           uint           `json:"reminder_id" gorm:"primaryKey"`
	SubtaskID    uint           `json:"subtask_id" gorm:"column:subtask_id;index"`
	ReminderTime time.Time      `json:"reminder_time" gorm:"not null;index"`
	Sent         bool           `json:"sent" gorm:"default:false"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name for Reminder Model
func (Reminder) TableName() string {
	return "reminders"
}

// Appointment is a scheduled meeting between a client and a staff user.
type Appointment struct {
	ID              uint           `json:"appointment_id" gorm:"primaryKey"`
	ClientID        uint           `json:"client_id" gorm:"column:client_id;index"`
	UserID          *uint          `json:"user_id" gorm:"column:user_id"`
	AppointmentTime time.Time      `json:"appointment_time" gorm:"not null"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name for Appointment Model
func (Appointment) TableName() string {
	return "appointments"
}
