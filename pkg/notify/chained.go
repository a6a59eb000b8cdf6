package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.uber.org/multierr"
)

// ChainedNotifier sends every notification to all of its notifiers. A failing
// notifier does not prevent the remaining ones from being called; the errors
// are combined.
type ChainedNotifier struct {
	notifiers []Notifier
}

func NewChainedNotifier(notifiers ...Notifier) *ChainedNotifier {
	return &ChainedNotifier{notifiers: notifiers}
}

func (c *ChainedNotifier) AddNotifiers(notifiers ...Notifier) {
	c.notifiers = append(c.notifiers, notifiers...)
}

func (c *ChainedNotifier) Len() int {
	return len(c.notifiers)
}

func (c *ChainedNotifier) Notify(ctx context.Context, n Notification) (err error) {
	startTime := time.Now()
	defer logNotification(ctx, n, startTime)(&err)

	if len(c.notifiers) == 0 {
		return fmt.Errorf("no notifiers registered")
	}

	for _, notifier := range c.notifiers {
		err = multierr.Append(err, notifier.Notify(ctx, n))
	}
	return err
}

func logNotification(ctx context.Context, n Notification, startTime time.Time) func(*error) {
	return func(notifyError *error) {
		var logMsg *zerolog.Event
		if *notifyError != nil {
			logMsg = log.Ctx(ctx).Debug().AnErr("NotifyError", *notifyError)
		} else {
			logMsg = log.Ctx(ctx).Trace()
		}
		logMsg.
			Str("Subject", n.Subject).
			Int("BodyLength", len(n.Body)).
			Dur("NotifyDuration", time.Since(startTime)).
			Msg("Handled notification")
	}
}

var _ Notifier = (*ChainedNotifier)(nil)
