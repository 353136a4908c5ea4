package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gymstudio/internal/domain"
	"gymstudio/internal/notification"
)

const (
	ReminderJobName = "class-reminders"
	reminderTimeout = 2 * time.Minute
)

// ReminderStore is the slice of the booking repository the reminder job needs.
type ReminderStore interface {
	DueForReminder(ctx context.Context, from, to time.Time) ([]domain.Booking, error)
	MarkReminded(ctx context.Context, ids []int64, at time.Time) error
}

type Reminders struct {
	store    ReminderStore
	notifier notification.Notifier
	window   time.Duration
	sent     prometheus.Counter
	now      func() time.Time
}

func NewReminders(store ReminderStore, notifier notification.Notifier, window time.Duration) *Reminders {
	return &Reminders{
		store:    store,
		notifier: notifier,
		window:   window,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CountSent adds every delivered reminder to c.
func (r *Reminders) CountSent(c prometheus.Counter) *Reminders {
	r.sent = c
	return r
}

// Register adds the reminder job to s.
func (r *Reminders) Register(s *Service, every time.Duration) error {
	if r.store == nil || r.notifier == nil {
		return fmt.Errorf("reminder job requires a store and a notifier")
	}
	jobLogger := log.With().
		Str("component", "class_reminders_job").
		Str("job_name", ReminderJobName).
		Str("channel", r.notifier.Channel()).
		Logger()

	_, err := s.Every(ReminderJobName, every, func() {
		ctx, cancel := context.WithTimeout(context.Background(), reminderTimeout)
		defer cancel()
		ctx = jobLogger.WithContext(ctx)

		sent, err := r.Run(ctx)
		if err != nil {
			jobLogger.Error().Err(err).Int("sent", sent).Msg("Class reminder run failed")
			return
		}
		if sent > 0 {
			jobLogger.Info().Int("sent", sent).Msg("Class reminders sent")
		}
	})
	if err != nil {
		return fmt.Errorf("add class reminder job: %w", err)
	}
	jobLogger.Info().Dur("window", r.window).Msg("Class reminder job registered")
	return nil
}

// Run notifies every confirmed booking whose class starts within the window
// and marks the delivered ones. It returns how many were marked.
func (r *Reminders) Run(ctx context.Context) (int, error) {
	now := r.now()
	due, err := r.store.DueForReminder(ctx, now, now.Add(r.window))
	if err != nil {
		return 0, fmt.Errorf("load due bookings: %w", err)
	}
	if len(due) == 0 {
		return 0, nil
	}

	logger := zerolog.Ctx(ctx)
	delivered := make([]int64, 0, len(due))
	for i := range due {
		rem := toReminder(&due[i])
		if err := r.notifier.NotifyClassReminder(ctx, rem); err != nil {
			logger.Error().Err(err).Int64("booking_id", rem.BookingID).Msg("Failed to deliver class reminder")
			continue
		}
		delivered = append(delivered, rem.BookingID)
	}

	if err := r.store.MarkReminded(ctx, delivered, now); err != nil {
		return 0, fmt.Errorf("mark reminded: %w", err)
	}
	if r.sent != nil {
		r.sent.Add(float64(len(delivered)))
	}
	return len(delivered), nil
}

func toReminder(b *domain.Booking) notification.Reminder {
	rem := notification.Reminder{
		BookingID: b.ID,
		MemberID:  b.MemberID,
	}
	if b.Member != nil {
		rem.MemberName = b.Member.FullName
		rem.Email = b.Member.Email
		rem.Phone = b.Member.Phone
	}
	if b.Schedule != nil {
		rem.ClassTitle = b.Schedule.Title
		rem.StartsAt = b.Schedule.StartsAt
		if b.Schedule.Trainer != nil {
			rem.TrainerName = b.Schedule.Trainer.FullName
		}
	}
	return rem
}
