package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"workflow-management-api/internal/models"
	"workflow-management-api/internal/notify"

	"gorm.io/gorm"
)

// Scheduler periodically sweeps the reminders table for due, unsent rows and
// dispatches them through a Sender. Delivery is at-least-once: a reminder is
// marked sent only after a successful dispatch, and a failed dispatch leaves
// it eligible for the next tick.
type Scheduler struct {
	db          *gorm.DB
	sender      notify.Sender
	interval    time.Duration
	sendTimeout time.Duration
	now         func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithInterval overrides the default one-minute tick.
func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) { s.interval = d }
}

// WithSendTimeout bounds each dispatch call.
func WithSendTimeout(d time.Duration) Option {
	return func(s *Scheduler) { s.sendTimeout = d }
}

// WithClock injects the time source; tests pin it.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// New builds a Scheduler over the given store handle and sender.
func New(db *gorm.DB, sender notify.Sender, opts ...Option) *Scheduler {
	s := &Scheduler{
		db:          db,
		sender:      sender,
		interval:    time.Minute,
		sendTimeout: 10 * time.Second,
		now:         time.Now,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the tick loop. Call Stop to shut it down.
func (s *Scheduler) Start() {
	go s.loop()
}

// Stop halts the loop and waits for the in-flight tick to finish.
func (s *Scheduler) Stop() {
	close(s.stopCh)
	<-s.doneCh
}

func (s *Scheduler) loop() {
	defer close(s.doneCh)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			log.Println("Checking for reminders...")
			sent, failed := s.Tick()
			if failed > 0 {
				log.Printf("Reminders checked: %d sent, %d failed (will retry)", sent, failed)
			} else if sent > 0 {
				log.Printf("Reminders checked: %d sent", sent)
			}
		}
	}
}

// Tick runs one sweep: scan due & unsent, dispatch, mark sent. Per-reminder
// failures are logged and skipped; the batch never aborts. Returns the sent
// and failed counts.
func (s *Scheduler) Tick() (sent, failed int) {
	var due []models.Reminder
	if err := s.db.
		Where("reminder_time <= ? AND sent = ?", s.now(), false).
		Find(&due).Error; err != nil {
		log.Printf("Error scanning reminders: %v", err)
		return 0, 0
	}

	for _, reminder := range due {
		if err := s.dispatch(reminder); err != nil {
			log.Printf("Error dispatching reminder %d: %v", reminder.ID, err)
			failed++
			continue
		}
		sent++
	}
	return sent, failed
}

// dispatch sends one reminder and flips its sent flag. The flag update is a
// conditional single-row write so a reminder can never be counted twice; if
// the update fails after a successful send the reminder may be delivered
// again next tick, which is the documented at-least-once behavior.
func (s *Scheduler) dispatch(reminder models.Reminder) error {
	n, err := s.buildNotification(reminder)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.sendTimeout)
	defer cancel()
	if err := s.sender.Send(ctx, n); err != nil {
		return fmt.Errorf("send: %w", err)
	}

	res := s.db.Model(&models.Reminder{}).
		Where("id = ? AND sent = ?", reminder.ID, false).
		Update("sent", true)
	if res.Error != nil {
		return fmt.Errorf("mark sent: %w", res.Error)
	}
	return nil
}

// buildNotification resolves the reminder's contact data: the subtask and,
// when picked, the assignee's email.
func (s *Scheduler) buildNotification(reminder models.Reminder) (notify.Notification, error) {
	n := notify.Notification{
		ReminderID:   reminder.ID,
		SubtaskID:    reminder.SubtaskID,
		ReminderTime: reminder.ReminderTime,
		Subject:      "Reminder",
	}

	var subtask models.Subtask
	if err := s.db.First(&subtask, reminder.SubtaskID).Error; err != nil {
		return n, fmt.Errorf("resolve subtask: %w", err)
	}
	n.Body = fmt.Sprintf("This is a reminder for %q due at %s",
		subtask.Title, reminder.ReminderTime.Format(time.RFC3339))

	if subtask.AssignedTo != nil {
		var user models.User
		if err := s.db.First(&user, *subtask.AssignedTo).Error; err == nil {
			n.RecipientID = user.ID
			n.Email = user.Email
		}
	}
	return n, nil
}
