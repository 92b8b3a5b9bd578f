// Package worker consumes domain events from the events queue.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/multitenant-notes/pkg/events"
	"github.com/oksasatya/multitenant-notes/pkg/mailer"
)

// ErrMalformedEvent marks a message that can never be processed and should be dropped.
var ErrMalformedEvent = errors.New("malformed event")

const sendTimeout = 15 * time.Second

// EventHandler logs every event and mails the acting admin when a tenant is
// upgraded. A nil Mailer disables mail.
type EventHandler struct {
	Logger *logrus.Logger
	Mailer mailer.Sender
}

// Handle processes one message body. Errors wrapping ErrMalformedEvent are
// permanent; any other error is worth a retry.
func (h *EventHandler) Handle(ctx context.Context, body []byte) error {
	var ev events.Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if ev.Type == "" || ev.TenantSlug == "" {
		return fmt.Errorf("%w: missing type or tenant", ErrMalformedEvent)
	}

	h.Logger.WithFields(logrus.Fields{
		"event_id": ev.ID,
		"event":    ev.Type,
		"tenant":   ev.TenantSlug,
		"actor_id": ev.ActorID,
		"note_id":  ev.NoteID,
	}).Info("event received")

	if ev.Type != events.TenantUpgraded || h.Mailer == nil {
		return nil
	}
	if ev.ActorEmail == "" {
		h.Logger.WithField("tenant", ev.TenantSlug).Warn("upgrade event without actor email; notice skipped")
		return nil
	}

	name, _ := ev.Data["tenantName"].(string)
	msg, err := mailer.UpgradeNotice(ev.TenantSlug, name, ev.OccurredAt)
	if err != nil {
		return fmt.Errorf("%w: render upgrade notice: %v", ErrMalformedEvent, err)
	}
	c, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if err := h.Mailer.Send(c, ev.ActorEmail, msg.Subject, msg.Text, msg.HTML); err != nil {
		return fmt.Errorf("send upgrade notice: %w", err)
	}
	h.Logger.WithFields(logrus.Fields{"tenant": ev.TenantSlug, "to": ev.ActorEmail}).Info("upgrade notice sent")
	return nil
}
