package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"workflow-management-api/internal/realtime"
)

// Notification is the payload handed to a Sender when a reminder comes due.
// Recipient fields may be zero when nobody has picked the subtask yet.
type Notification struct {
	ReminderID   uint
	SubtaskID    uint
	RecipientID  uint
	Email        string
	Subject      string
	Body         string
	ReminderTime time.Time
}

// Sender delivers a notification over some channel (email, push, ...). The
// scheduler treats it as opaque: an error means the reminder stays unsent
// and is retried on the next tick.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}

// LogSender writes notifications to the process log. It stands in for an
// email transport in development and tests.
type LogSender struct{}

// Send implements Sender.
func (LogSender) Send(_ context.Context, n Notification) error {
	log.Printf("reminder %d due at %s: %s (recipient %q)",
		n.ReminderID, n.ReminderTime.Format(time.RFC3339), n.Body, n.Email)
	return nil
}

// HubSender pushes notifications to the recipient's connected websocket
// clients. Delivery is best-effort per the hub's semantics; a recipient with
// no claim on the subtask yet is an error so the reminder is retried once
// someone picks it.
type HubSender struct {
	Hub *realtime.Hub
}

// Send implements Sender.
func (s HubSender) Send(_ context.Context, n Notification) error {
	if n.RecipientID == 0 {
		return fmt.Errorf("notify: reminder %d has no recipient yet", n.ReminderID)
	}
	s.Hub.BroadcastEvent(n.RecipientID, realtime.Event{
		Type:       realtime.EventReminderDue,
		ReminderID: n.ReminderID,
		SubtaskID:  n.SubtaskID,
		UserID:     n.RecipientID,
	})
	return nil
}
