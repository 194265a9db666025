package workflow

import (
	"errors"
	"fmt"
	"time"

	"workflow-management-api/internal/models"

	"gorm.io/gorm"
)

// Engine enforces the workflow semantics on top of the hierarchy store. The
// store handle is passed in explicitly so every component (and every test)
// decides which database it runs against.
type Engine struct {
	db *gorm.DB
}

// NewEngine wraps a store handle.
func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// predecessors declares, per target status, which statuses may move there.
// The application state machine is strictly ordered; there is no entry that
// points backwards, so statuses are monotonic along the workflow.
var predecessors = map[models.ApplicationStatus][]models.ApplicationStatus{
	models.ApplicationSubmitted: {models.ApplicationPending},
	models.ApplicationApproved:  {models.ApplicationSubmitted},
	models.ApplicationRejected:  {models.ApplicationSubmitted},
	models.ApplicationHandover:  {models.ApplicationApproved, models.ApplicationRejected},
}

func transitionAllowed(from, to models.ApplicationStatus) bool {
	for _, p := range predecessors[to] {
		if p == from {
			return true
		}
	}
	return false
}

// CreateApplicationInput carries the client-supplied application fields.
type CreateApplicationInput struct {
	ClientID         uint
	DocumentPath     string
	HardFilePosition string
}

// CreateApplication registers a new application at the Pending stage.
func (e *Engine) CreateApplication(in CreateApplicationInput) (*models.Application, error) {
	app := models.Application{
		ClientID:         in.ClientID,
		SubmittedAt:      time.Now(),
		Status:           models.ApplicationPending,
		DocumentPath:     in.DocumentPath,
		HardFilePosition: in.HardFilePosition,
	}
	if err := e.db.Create(&app).Error; err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}
	return &app, nil
}

// GetApplication fetches a non-deleted application.
func (e *Engine) GetApplication(id uint) (*models.Application, error) {
	var app models.Application
	if err := e.db.First(&app, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get application: %w", err)
	}
	return &app, nil
}

// UpdateApplicationInput is a partial update; nil fields are left untouched.
type UpdateApplicationInput struct {
	Status           *models.ApplicationStatus
	DocumentPath     *string
	HardFilePosition *string
}

// UpdateApplication applies a partial update. A status change goes through
// the same predecessor table as the named transitions, so no update can move
// an application backwards in the workflow.
func (e *Engine) UpdateApplication(id uint, in UpdateApplicationInput) (*models.Application, error) {
	app, err := e.GetApplication(id)
	if err != nil {
		return nil, err
	}
	if in.Status != nil && *in.Status != app.Status {
		if !transitionAllowed(app.Status, *in.Status) {
			return nil, ErrInvalidTransition
		}
		app.Status = *in.Status
	}
	if in.DocumentPath != nil {
		app.DocumentPath = *in.DocumentPath
	}
	if in.HardFilePosition != nil {
		app.HardFilePosition = *in.HardFilePosition
	}
	if err := e.db.Save(app).Error; err != nil {
		return nil, fmt.Errorf("update application: %w", err)
	}
	return app, nil
}

// DeleteApplication soft-deletes; applications are never hard-deleted.
func (e *Engine) DeleteApplication(id uint) error {
	app, err := e.GetApplication(id)
	if err != nil {
		return err
	}
	if err := e.db.Delete(app).Error; err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	return nil
}

// transition moves the application to a target status, enforcing the
// predecessor table inside a single conditional update so concurrent
// transitions cannot both fire from the same predecessor.
func (e *Engine) transition(id uint, to models.ApplicationStatus) (*models.Application, error) {
	app, err := e.GetApplication(id)
	if err != nil {
		return nil, err
	}
	if !transitionAllowed(app.Status, to) {
		return nil, ErrInvalidTransition
	}
	res := e.db.Model(&models.Application{}).
		Where("id = ? AND status = ?", id, app.Status).
		Update("status", to)
	if res.Error != nil {
		return nil, fmt.Errorf("transition application: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Someone else moved it between our read and write.
		return nil, ErrInvalidTransition
	}
	app.Status = to
	return app, nil
}

// SubmitToManager transitions Pending → Submitted to Manager.
func (e *Engine) SubmitToManager(id uint) (*models.Application, error) {
	return e.transition(id, models.ApplicationSubmitted)
}

// HandoverToClient transitions (Approved | Rejected) → Handover to Client.
func (e *Engine) HandoverToClient(id uint) (*models.Application, error) {
	return e.transition(id, models.ApplicationHandover)
}

// CheckProgress lists all non-deleted applications for a client, newest
// first.
func (e *Engine) CheckProgress(clientID uint) ([]models.Application, error) {
	var apps []models.Application
	if err := e.db.
		Where("client_id = ?", clientID).
		Order("created_at desc").
		Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("check progress: %w", err)
	}
	return apps, nil
}
