package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"gymstudio/internal/domain"
)

// StatsRepository runs the read-only aggregates behind the dashboard.
type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) CountMembers(ctx context.Context) (total, active int64, err error) {
	if err = r.db.WithContext(ctx).Model(&domain.Member{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err = r.db.WithContext(ctx).Model(&domain.Member{}).Where("is_active = ?", true).Count(&active).Error
	return total, active, err
}

func (r *StatsRepository) CountActiveTrainers(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&domain.Trainer{}).Where("is_active = ?", true).Count(&cnt).Error
	return cnt, err
}

// CountMembershipTypes skips soft-deleted plans.
func (r *StatsRepository) CountMembershipTypes(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&domain.MembershipType{}).Count(&cnt).Error
	return cnt, err
}

// CountLiveBookings counts non-cancelled bookings for classes starting in [from, to).
func (r *StatsRepository) CountLiveBookings(ctx context.Context, from, to time.Time) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Joins("JOIN schedules ON schedules.id = bookings.schedule_id").
		Where("bookings.status <> ?", domain.BookingCancelled).
		Where("schedules.starts_at >= ? AND schedules.starts_at < ?", from.UTC(), to.UTC()).
		Count(&cnt).Error
	return cnt, err
}

// BookingCounts groups bookings for classes starting in [from, to).
type BookingCounts struct {
	ByStatus map[domain.BookingStatus]int64
	// non-cancelled bookings flagged is_attended
	Attended int64
	FreeUsed int64
}

func (r *StatsRepository) BookingCountsBetween(ctx context.Context, from, to time.Time) (BookingCounts, error) {
	out := BookingCounts{ByStatus: map[domain.BookingStatus]int64{
		domain.BookingConfirmed: 0,
		domain.BookingCancelled: 0,
		domain.BookingAttended:  0,
	}}

	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&domain.Booking{}).
			Joins("JOIN schedules ON schedules.id = bookings.schedule_id").
			Where("schedules.starts_at >= ? AND schedules.starts_at < ?", from.UTC(), to.UTC())
	}

	var rows []struct {
		Status string
		Cnt    int64
	}
	if err := base().Select("bookings.status AS status, COUNT(*) AS cnt").Group("bookings.status").Scan(&rows).Error; err != nil {
		return out, err
	}
	for _, row := range rows {
		out.ByStatus[domain.BookingStatus(row.Status)] = row.Cnt
	}

	if err := base().
		Where("bookings.is_attended = ? AND bookings.status <> ?", true, domain.BookingCancelled).
		Count(&out.Attended).Error; err != nil {
		return out, err
	}
	if err := base().Where("bookings.used_free_class = ?", true).Count(&out.FreeUsed).Error; err != nil {
		return out, err
	}
	return out, nil
}

// MonthlyRevenue sums plan prices of active members on live plans, in minor units.
func (r *StatsRepository) MonthlyRevenue(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Table("members").
		Select("COALESCE(SUM(membership_types.monthly_price), 0)").
		Joins("JOIN membership_types ON membership_types.id = members.membership_type_id").
		Where("members.is_active = ? AND membership_types.deleted_at IS NULL", true).
		Scan(&total).Error
	return total, err
}
