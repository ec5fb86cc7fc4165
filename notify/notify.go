// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// DefaultPace keeps broadcasts at about 20 messages per second.
const DefaultPace = 50 * time.Millisecond

// Sender delivers a plain text message to one user.
type Sender interface {
	Send(ctx context.Context, recipient, text string) error
}

// Subscribers lists who should receive reminders.
type Subscribers interface {
	ListSubscribers(ctx context.Context) ([]string, error)
}

// Notifier broadcasts the reminder text to every subscriber.
type Notifier struct {
	subs   Subscribers
	sender Sender
	text   string
	pace   time.Duration
	now    func() time.Time
}

func NewNotifier(subs Subscribers, sender Sender, text string) *Notifier {
	return &Notifier{subs: subs, sender: sender, text: text, pace: DefaultPace, now: time.Now}
}

// Result summarizes one broadcast.
type Result struct {
	Sent   int
	Failed int
}

// NotifyAll sends the reminder to every subscriber, one at a time. A failed
// delivery is logged and skipped; only a failure to list subscribers or a
// cancelled context aborts the broadcast.
func (n *Notifier) NotifyAll(ctx context.Context) (Result, error) {
	var res Result

	recipients, err := n.subs.ListSubscribers(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to list subscribers: %w", err)
	}

	limiter := rate.NewLimiter(rate.Every(n.pace), 1)
	for _, recipient := range recipients {
		if err := limiter.Wait(ctx); err != nil {
			return res, err
		}
		if err := n.sender.Send(ctx, recipient, n.text); err != nil {
			slog.Warn("reminder delivery failed", "recipient", recipient, "error", err)
			res.Failed++
			continue
		}
		res.Sent++
	}

	slog.Info("reminders sent", "sent", res.Sent, "failed", res.Failed)
	return res, nil
}

// Run broadcasts on every occurrence of the schedule until ctx is done.
func (n *Notifier) Run(ctx context.Context, sched Schedule) error {
	for {
		next := sched.Next(n.now())
		slog.Info("next reminder scheduled", "at", next)

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		if _, err := n.NotifyAll(ctx); err != nil {
			slog.Error("reminder broadcast failed", "error", err)
		}
	}
}
