package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"workflow-management-api/internal/models"
	"workflow-management-api/internal/notify"
	"workflow-management-api/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// recordingSender captures every dispatched notification and can be told to
// fail, so tests can observe retry behavior.
type recordingSender struct {
	mu       sync.Mutex
	sent     []notify.Notification
	failWith error
}

func (r *recordingSender) Send(_ context.Context, n notify.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	r.sent = append(r.sent, n)
	return nil
}

func (r *recordingSender) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

func newSchedulerTestEnv(t *testing.T) (*gorm.DB, *recordingSender, time.Time) {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	return db, &recordingSender{}, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func seedReminder(t *testing.T, db *gorm.DB, reminderTime time.Time) models.Reminder {
	t.Helper()
	app := models.Application{ClientID: 1, Status: models.ApplicationPending}
	require.NoError(t, db.Create(&app).Error)
	task := models.Task{ApplicationID: &app.ID, Title: "prep", Status: models.StatusPending}
	require.NoError(t, db.Create(&task).Error)
	sub := models.Subtask{TaskID: task.ID, Title: "gather forms", Status: models.StatusPending}
	require.NoError(t, db.Create(&sub).Error)
	reminder := models.Reminder{SubtaskID: sub.ID, ReminderTime: reminderTime}
	require.NoError(t, db.Create(&reminder).Error)
	return reminder
}

func TestTick_SendsDueReminderOnce(t *testing.T) {
	db, sender, now := newSchedulerTestEnv(t)
	reminder := seedReminder(t, db, now.Add(-time.Hour))

	s := New(db, sender, WithClock(func() time.Time { return now }))

	sent, failed := s.Tick()
	require.Equal(t, 1, sent)
	require.Equal(t, 0, failed)
	require.Equal(t, 1, sender.count())
	require.Equal(t, reminder.ID, sender.sent[0].ReminderID)

	var stored models.Reminder
	require.NoError(t, db.First(&stored, reminder.ID).Error)
	require.True(t, stored.Sent)

	// A second sweep finds nothing due; no double delivery.
	sent, failed = s.Tick()
	require.Equal(t, 0, sent)
	require.Equal(t, 0, failed)
	require.Equal(t, 1, sender.count())
}

func TestTick_SkipsFutureReminders(t *testing.T) {
	db, sender, now := newSchedulerTestEnv(t)
	seedReminder(t, db, now.Add(30*time.Minute))

	s := New(db, sender, WithClock(func() time.Time { return now }))
	sent, failed := s.Tick()
	require.Equal(t, 0, sent)
	require.Equal(t, 0, failed)
	require.Zero(t, sender.count())
}

func TestTick_FailedSendRetriesNextTick(t *testing.T) {
	db, sender, now := newSchedulerTestEnv(t)
	reminder := seedReminder(t, db, now.Add(-time.Minute))

	sender.failWith = errors.New("smtp down")
	s := New(db, sender, WithClock(func() time.Time { return now }))

	sent, failed := s.Tick()
	require.Equal(t, 0, sent)
	require.Equal(t, 1, failed)

	var stored models.Reminder
	require.NoError(t, db.First(&stored, reminder.ID).Error)
	require.False(t, stored.Sent)

	// Once the sender recovers the same reminder goes out.
	sender.mu.Lock()
	sender.failWith = nil
	sender.mu.Unlock()
	sent, failed = s.Tick()
	require.Equal(t, 1, sent)
	require.Equal(t, 0, failed)
	require.Equal(t, 1, sender.count())
}

func TestTick_ResolvesAssigneeContact(t *testing.T) {
	db, sender, now := newSchedulerTestEnv(t)
	reminder := seedReminder(t, db, now.Add(-time.Minute))

	user := models.User{Username: "m1", Email: "m1@example.com", PasswordHash: "x", Role: models.RoleMember}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Model(&models.Subtask{}).
		Where("id = ?", reminder.SubtaskID).
		Update("assigned_to", user.ID).Error)

	s := New(db, sender, WithClock(func() time.Time { return now }))
	sent, _ := s.Tick()
	require.Equal(t, 1, sent)
	require.Equal(t, user.ID, sender.sent[0].RecipientID)
	require.Equal(t, "m1@example.com", sender.sent[0].Email)
}

func TestStartStop_SweepsOnInterval(t *testing.T) {
	db, sender, now := newSchedulerTestEnv(t)
	seedReminder(t, db, now.Add(-time.Minute))

	s := New(db, sender,
		WithInterval(10*time.Millisecond),
		WithClock(func() time.Time { return now }))
	s.Start()
	defer s.Stop()

	require.Eventually(t, func() bool { return sender.count() == 1 },
		2*time.Second, 5*time.Millisecond)
}
