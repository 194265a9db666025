package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is the flat role set checked per endpoint. There is no hierarchy;
// every operation enumerates the roles it accepts.
type Role string

const (
	RoleSuperAdmin Role = "SuperAdmin"
	RoleAdmin      Role = "Admin"
	RoleManager    Role = "Manager"
	RoleMember     Role = "Member"
	RoleNotaris    Role = "Notaris"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleManager, RoleMember, RoleNotaris:
		return true
	default:
		return false
	}
}

// User represents a staff user (admin, manager, team member, notaris).
type User struct {
	ID           uint           `json:"user_id" gorm:"primaryKey"`
	Username     string         `json:"username" gorm:"unique;not null"`
	Email        string         `json:"email" gorm:"unique;not null"`
	PasswordHash string         `json:"-" gorm:"not null"`
	Role         Role           `json:"role" gorm:"not null"`
	TeamID       *uint          `json:"team_id" gorm:"column:team_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name for User Model
func (User) TableName() string {
	return "users"
}

// Client represents a client whose applications move through the workflow.
type Client struct {
	ID           uint           `json:"client_id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"not null"`
	Email        string         `json:"email" gorm:"unique;not null"`
	Phone        string         `json:"phone"`
	Address      string         `json:"address"`
	PasswordHash string         `json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name for Client Model
func (Client) TableName() string {
	return "clients"
}

// Team groups members; tasks are assigned to a team before a member picks
// the underlying subtasks.
type Team struct {
	ID        uint           `json:"team_id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"not null"`
	ManagerID *uint          `json:"manager_id" gorm:"column:manager_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name for Team Model
func (Team) TableName() string {
	return "teams"
}
