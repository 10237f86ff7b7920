package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/yanxingzhi/event-form-multi/internal/models"
)

// NotificationError wraps a failed confirmation. It is logged, never returned
// to the registrant.
type NotificationError struct {
	Stage string
	Err   error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification %s: %v", e.Stage, e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }

// ConfirmationText is the message pushed after a successful registration.
func ConfirmationText(eventTitle string) string {
	return fmt.Sprintf("報名成功！您已完成「%s」的報名，我們會在活動前與您聯繫。", eventTitle)
}

type EventSource interface {
	Events(ctx context.Context) ([]models.Event, error)
}

// Confirmer resolves the event title for a registration and pushes the
// confirmation message to the registrant.
type Confirmer struct {
	events   EventSource
	notifier Notifier
}

func NewConfirmer(events EventSource, n Notifier) *Confirmer {
	return &Confirmer{events: events, notifier: n}
}

func (c *Confirmer) Confirm(ctx context.Context, userID, activityID string) error {
	if strings.TrimSpace(userID) == "" {
		return &NotificationError{Stage: "recipient", Err: fmt.Errorf("registration has no userId")}
	}

	events, err := c.events.Events(ctx)
	if err != nil {
		return &NotificationError{Stage: "catalog", Err: err}
	}
	event, err := FindEvent(events, activityID)
	if err != nil {
		return &NotificationError{Stage: "catalog", Err: err}
	}

	if err := c.notifier.Push(ctx, userID, ConfirmationText(event.Title)); err != nil {
		return &NotificationError{Stage: "push", Err: err}
	}
	return nil
}
