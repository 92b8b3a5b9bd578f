package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/multitenant-notes/pkg/events"
)

// EventPublisher delivers domain events. helpers.RabbitPublisher implements it.
type EventPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

const publishTimeout = 2 * time.Second

// publish is best effort: the mutation has already happened, so a broker
// failure is logged and never returned to the caller.
func publish(ctx context.Context, pub EventPublisher, logger *logrus.Logger, ev events.Event) {
	if pub == nil {
		return
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	c, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := pub.PublishJSON(c, ev); err != nil && logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"event":  ev.Type,
			"tenant": ev.TenantSlug,
		}).Warn("publish event failed")
	}
}
