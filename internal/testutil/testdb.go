package testutil

import (
	"workflow-management-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewInMemoryDB creates an in-memory SQLite DB and runs migrations.
func NewInMemoryDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	// An in-memory SQLite database exists per connection; pin the pool to a
	// single connection so every goroutine sees the same database.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Team{},
		&models.Application{},
		&models.Task{},
		&models.Subtask{},
		&models.Document{},
		&models.TaskDocument{},
		&models.Reminder{},
		&models.Appointment{},
	); err != nil {
		return nil, err
	}
	return db, nil
}
