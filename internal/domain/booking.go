package domain

import "time"

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingAttended  BookingStatus = "attended"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingConfirmed, BookingCancelled, BookingAttended:
		return true
	}
	return false
}

// CanTransitionTo reports whether status may move from s to next.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return s == BookingConfirmed && (next == BookingCancelled || next == BookingAttended)
}

// Booking links a member to a schedule.
//
// IsAttended and UsedFreeClass are independent of Status: a cancelled booking
// may still carry IsAttended=true. Nothing in this package keeps them in sync.
type Booking struct {
	ID            int64         `json:"id" gorm:"primaryKey"`
	MemberID      int64         `json:"member_id" gorm:"index;not null"`
	ScheduleID    int64         `json:"schedule_id" gorm:"index;not null"`
	BookedAt      time.Time     `json:"booked_at" gorm:"not null"`
	IsAttended    bool          `json:"is_attended" gorm:"not null;default:false"`
	UsedFreeClass bool          `json:"used_free_class" gorm:"not null;default:false"`
	Status        BookingStatus `json:"status" gorm:"size:16;index;not null"`
	RemindedAt    *time.Time    `json:"-"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	Member   *Member   `json:"member,omitempty" gorm:"foreignKey:MemberID"`
	Schedule *Schedule `json:"schedule,omitempty" gorm:"foreignKey:ScheduleID"`
}

func (Booking) TableName() string { return "bookings" }
