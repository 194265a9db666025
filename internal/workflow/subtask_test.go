package workflow

import (
	"sync"
	"testing"

	"workflow-management-api/internal/models"

	"github.com/stretchr/testify/require"
)

func createTestSubtask(t *testing.T, e *Engine) *models.Subtask {
	t.Helper()
	app := createTestApplication(t, e)
	task := createTestTask(t, e, app.ID, "team work")
	sub, err := e.CreateSubtask(CreateSubtaskInput{TaskID: task.ID, Title: "unit"})
	require.NoError(t, err)
	require.Nil(t, sub.AssignedTo)
	require.Equal(t, models.StatusPending, sub.Status)
	return sub
}

func TestPickSubtask_FirstClaimWins(t *testing.T) {
	e := newTestEngine(t)
	sub := createTestSubtask(t, e)

	picked, err := e.PickSubtask(sub.ID, 7)
	require.NoError(t, err)
	require.Equal(t, uint(7), *picked.AssignedTo)
	require.Equal(t, models.StatusInProgress, picked.Status)

	// A later pick fails and leaves the winner's claim untouched.
	_, err = e.PickSubtask(sub.ID, 9)
	require.ErrorIs(t, err, ErrAlreadyPicked)
	after, err := e.GetSubtask(sub.ID)
	require.NoError(t, err)
	require.Equal(t, uint(7), *after.AssignedTo)
}

func TestPickSubtask_Concurrent(t *testing.T) {
	e := newTestEngine(t)
	sub := createTestSubtask(t, e)

	const members = 8
	errs := make([]error, members)
	var wg sync.WaitGroup
	for i := 0; i < members; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.PickSubtask(sub.ID, uint(i+1))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			require.ErrorIs(t, err, ErrAlreadyPicked)
		}
	}
	require.Equal(t, 1, winners)

	after, err := e.GetSubtask(sub.ID)
	require.NoError(t, err)
	require.NotNil(t, after.AssignedTo)
	require.Equal(t, models.StatusInProgress, after.Status)
}

func TestPickSubtask_Missing(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.PickSubtask(404, 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateSubtask_PartialAndEnumCheck(t *testing.T) {
	e := newTestEngine(t)
	sub := createTestSubtask(t, e)

	done := models.StatusCompleted
	updated, err := e.UpdateSubtask(sub.ID, UpdateSubtaskInput{Status: &done})
	require.NoError(t, err)
	require.Equal(t, models.StatusCompleted, updated.Status)
	require.Equal(t, "unit", updated.Title)

	bogus := models.TaskStatus("Stalled")
	_, err = e.UpdateSubtask(sub.ID, UpdateSubtaskInput{Status: &bogus})
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCreateSubtask_MissingTask(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.CreateSubtask(CreateSubtaskInput{TaskID: 404, Title: "orphan"})
	require.ErrorIs(t, err, ErrNotFound)
}
