package workflow

import "errors"

// Engine failure taxonomy. Handlers map these to HTTP codes; anything not in
// this list is a store failure and surfaces as a server error.
var (
	// ErrNotFound means the referenced entity does not exist or is soft-deleted.
	ErrNotFound = errors.New("workflow: entity not found")

	// ErrInvalidTransition means the application's current status is not a
	// valid predecessor of the requested status.
	ErrInvalidTransition = errors.New("workflow: invalid status transition")

	// ErrAlreadyPicked means another member claimed the subtask first.
	ErrAlreadyPicked = errors.New("workflow: subtask already picked")

	// ErrChecklistCycle means the parent assignment would make a task a
	// descendant of itself.
	ErrChecklistCycle = errors.New("workflow: checklist parent cycle")

	// ErrInvalidStatus means the requested task/subtask status is not one of
	// Pending, In Progress, Completed.
	ErrInvalidStatus = errors.New("workflow: invalid status value")
)
