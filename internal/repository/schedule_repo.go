package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gymstudio/internal/domain"
)

var ErrScheduleBooked = errors.New("class has live bookings")

type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) Create(ctx context.Context, s *domain.Schedule) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	var s domain.Schedule
	if err := r.db.WithContext(ctx).Preload("Trainer").First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// ScheduleSlot is a schedule row plus its live booking count.
type ScheduleSlot struct {
	domain.Schedule
	Booked int64 `json:"booked"`
}

// ListBetween returns classes starting in [from, to).
func (r *ScheduleRepository) ListBetween(ctx context.Context, from, to time.Time) ([]ScheduleSlot, error) {
	var schedules []domain.Schedule
	err := r.db.WithContext(ctx).
		Preload("Trainer").
		Where("starts_at >= ? AND starts_at < ?", from.UTC(), to.UTC()).
		Order("starts_at ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	if len(schedules) == 0 {
		return []ScheduleSlot{}, nil
	}

	ids := make([]int64, 0, len(schedules))
	for _, s := range schedules {
		ids = append(ids, s.ID)
	}

	var counts []struct {
		ScheduleID int64
		Cnt        int64
	}
	err = r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Select("schedule_id, COUNT(*) AS cnt").
		Where("schedule_id IN ? AND status <> ?", ids, domain.BookingCancelled).
		Group("schedule_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	booked := make(map[int64]int64, len(counts))
	for _, c := range counts {
		booked[c.ScheduleID] = c.Cnt
	}

	out := make([]ScheduleSlot, 0, len(schedules))
	for _, s := range schedules {
		out = append(out, ScheduleSlot{Schedule: s, Booked: booked[s.ID]})
	}
	return out, nil
}

// Delete removes a class together with its cancelled bookings. It fails with
// ErrScheduleBooked while any live booking remains.
func (r *ScheduleRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s domain.Schedule
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&s, id).Error; err != nil {
			return err
		}

		var live int64
		err := tx.Model(&domain.Booking{}).
			Where("schedule_id = ? AND status <> ?", id, domain.BookingCancelled).
			Count(&live).Error
		if err != nil {
			return err
		}
		if live > 0 {
			return ErrScheduleBooked
		}

		err = tx.Where("schedule_id = ? AND status = ?", id, domain.BookingCancelled).
			Delete(&domain.Booking{}).Error
		if err != nil {
			return err
		}
		return tx.Delete(&domain.Schedule{}, id).Error
	})
}
