package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gymstudio/internal/domain"
)

var (
	ErrDuplicateBooking  = errors.New("member already booked this class")
	ErrClassFull         = errors.New("class is full")
	ErrClassLimitReached = errors.New("monthly class limit reached")
	ErrStatusChanged     = errors.New("booking status changed concurrently")
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// BookingLimits are checked against the live table in the same transaction as the insert.
type BookingLimits struct {
	Capacity int
	// 0 disables the monthly check
	MonthlyLimit int
	MonthStart   time.Time
	MonthEnd     time.Time
}

// BookingFilter narrows the admin listing.
type BookingFilter struct {
	ScheduleID *int64
	Status     *domain.BookingStatus
	Limit      int
	Offset     int
}

// AttendanceRow is one line of the attendance export.
type AttendanceRow struct {
	BookingID     int64
	MemberName    string
	MemberEmail   string
	ClassTitle    string
	TrainerName   string
	StartsAt      time.Time
	Status        string
	IsAttended    bool
	UsedFreeClass bool
}

// CreateWithinLimits inserts b unless the member already holds a live booking
// for the class, the class is full, or the member is out of monthly classes.
// Free-class bookings do not count toward the monthly limit.
//
// The class row and then the member row are locked before counting, so
// concurrent bookings for the same class or member run one after another.
func (r *BookingRepository) CreateWithinLimits(ctx context.Context, b *domain.Booking, lim BookingLimits) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&domain.Schedule{}, b.ScheduleID).Error; err != nil {
			return err
		}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&domain.Member{}, b.MemberID).Error; err != nil {
			return err
		}

		var dup int64
		err := tx.Model(&domain.Booking{}).
			Where("member_id = ? AND schedule_id = ? AND status <> ?", b.MemberID, b.ScheduleID, domain.BookingCancelled).
			Count(&dup).Error
		if err != nil {
			return err
		}
		if dup > 0 {
			return ErrDuplicateBooking
		}

		var taken int64
		err = tx.Model(&domain.Booking{}).
			Where("schedule_id = ? AND status <> ?", b.ScheduleID, domain.BookingCancelled).
			Count(&taken).Error
		if err != nil {
			return err
		}
		if taken >= int64(lim.Capacity) {
			return ErrClassFull
		}

		if lim.MonthlyLimit > 0 && !b.UsedFreeClass {
			var used int64
			err = tx.Model(&domain.Booking{}).
				Joins("JOIN schedules ON schedules.id = bookings.schedule_id").
				Where("bookings.member_id = ? AND bookings.status <> ? AND bookings.used_free_class = ?",
					b.MemberID, domain.BookingCancelled, false).
				Where("schedules.starts_at >= ? AND schedules.starts_at < ?", lim.MonthStart.UTC(), lim.MonthEnd.UTC()).
				Count(&used).Error
			if err != nil {
				return err
			}
			if used >= int64(lim.MonthlyLimit) {
				return ErrClassLimitReached
			}
		}

		return tx.Create(b).Error
	})
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Member").
		Preload("Schedule.Trainer").
		First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) ListByMember(ctx context.Context, memberID int64) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Schedule.Trainer").
		Joins("JOIN schedules ON schedules.id = bookings.schedule_id").
		Where("bookings.member_id = ?", memberID).
		Order("schedules.starts_at DESC").
		Find(&out).Error
	return out, err
}

func (r *BookingRepository) List(ctx context.Context, f BookingFilter) ([]domain.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Booking{})
	if f.ScheduleID != nil {
		q = q.Where("schedule_id = ?", *f.ScheduleID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []domain.Booking
	err := q.Preload("Member").
		Preload("Schedule.Trainer").
		Order("id DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&out).Error
	return out, total, err
}

// UpdateStatus moves a booking from one status to another. It fails with
// ErrStatusChanged when the row is no longer in from.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusChanged
	}
	return nil
}

func (r *BookingRepository) SetAttendance(ctx context.Context, id int64, attended bool) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ?", id).
		Update("is_attended", attended)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountLive counts bookings for a class that were not cancelled.
func (r *BookingRepository) CountLive(ctx context.Context, scheduleID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("schedule_id = ? AND status <> ?", scheduleID, domain.BookingCancelled).
		Count(&cnt).Error
	return cnt, err
}

// DueForReminder returns confirmed, unreminded bookings for classes starting in [from, to).
func (r *BookingRepository) DueForReminder(ctx context.Context, from, to time.Time) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Member").
		Preload("Schedule.Trainer").
		Joins("JOIN schedules ON schedules.id = bookings.schedule_id").
		Where("bookings.status = ? AND bookings.reminded_at IS NULL", domain.BookingConfirmed).
		Where("schedules.starts_at >= ? AND schedules.starts_at < ?", from.UTC(), to.UTC()).
		Order("schedules.starts_at ASC").
		Find(&out).Error
	return out, err
}

func (r *BookingRepository) MarkReminded(ctx context.Context, ids []int64, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id IN ?", ids).
		Update("reminded_at", at.UTC()).Error
}

// AttendanceBetween lists bookings for classes starting in [from, to), oldest first.
func (r *BookingRepository) AttendanceBetween(ctx context.Context, from, to time.Time) ([]AttendanceRow, error) {
	var out []AttendanceRow
	err := r.db.WithContext(ctx).
		Table("bookings").
		Select(`bookings.id AS booking_id,
			members.full_name AS member_name,
			members.email AS member_email,
			schedules.title AS class_title,
			trainers.full_name AS trainer_name,
			schedules.starts_at AS starts_at,
			bookings.status AS status,
			bookings.is_attended AS is_attended,
			bookings.used_free_class AS used_free_class`).
		Joins("JOIN members ON members.id = bookings.member_id").
		Joins("JOIN schedules ON schedules.id = bookings.schedule_id").
		Joins("JOIN trainers ON trainers.id = schedules.trainer_id").
		Where("schedules.starts_at >= ? AND schedules.starts_at < ?", from.UTC(), to.UTC()).
		Order("schedules.starts_at ASC, bookings.id ASC").
		Scan(&out).Error
	return out, err
}
