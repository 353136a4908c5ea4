package notification

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	TypeClassReminder = "class.reminder"

	ChannelLog = "log"
)

// Reminder is one upcoming class a member should be told about.
type Reminder struct {
	BookingID   int64     `json:"booking_id"`
	MemberID    int64     `json:"member_id"`
	MemberName  string    `json:"member_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	ClassTitle  string    `json:"class_title"`
	TrainerName string    `json:"trainer_name,omitempty"`
	StartsAt    time.Time `json:"starts_at"`
}

// Notifier delivers reminders. A returned error leaves the reminder pending
// so the next run retries it.
type Notifier interface {
	Channel() string
	NotifyClassReminder(ctx context.Context, r Reminder) error
}

// LogNotifier writes reminders to the application log.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (LogNotifier) Channel() string { return ChannelLog }

func (LogNotifier) NotifyClassReminder(ctx context.Context, r Reminder) error {
	log.Ctx(ctx).Info().
		Str("type", TypeClassReminder).
		Int64("booking_id", r.BookingID).
		Int64("member_id", r.MemberID).
		Str("email", r.Email).
		Str("class", r.ClassTitle).
		Str("trainer", r.TrainerName).
		Time("starts_at", r.StartsAt).
		Msg("Class reminder")
	return nil
}
