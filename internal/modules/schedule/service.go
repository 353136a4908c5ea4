package schedule

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"gymstudio/internal/domain"
	"gymstudio/internal/repository"
)

const (
	defaultWindow = 7 * 24 * time.Hour
	maxWindow     = 62 * 24 * time.Hour
)

type Service struct {
	schedules ScheduleRepository
	trainers  TrainerReader
	now       func() time.Time
}

func NewService(schedules ScheduleRepository, trainers TrainerReader) *Service {
	return &Service{
		schedules: schedules,
		trainers:  trainers,
		now:       time.Now,
	}
}

// Window fills in a missing bound: from defaults to today, to defaults to a week after from.
func (s *Service) Window(from, to *time.Time) (time.Time, time.Time, error) {
	now := s.now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if from != nil {
		start = from.UTC()
	}
	end := start.Add(defaultWindow)
	if to != nil {
		end = to.UTC()
	}

	if !end.After(start) || end.Sub(start) > maxWindow {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	return start, end, nil
}

func (s *Service) List(ctx context.Context, from, to time.Time) ([]repository.ScheduleSlot, error) {
	return s.schedules.ListBetween(ctx, from, to)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Schedule, error) {
	sc, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sc, nil
}

func (s *Service) Create(ctx context.Context, req CreateScheduleRequest) (*domain.Schedule, error) {
	if !req.EndsAt.After(req.StartsAt) {
		return nil, ErrInvalidRange
	}
	if req.StartsAt.Before(s.now()) {
		return nil, ErrInPast
	}

	if _, err := s.trainers.GetByID(ctx, req.TrainerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}

	sc := &domain.Schedule{
		TrainerID: req.TrainerID,
		Title:     strings.TrimSpace(req.Title),
		StartsAt:  req.StartsAt.UTC(),
		EndsAt:    req.EndsAt.UTC(),
		Capacity:  req.Capacity,
	}
	if err := s.schedules.Create(ctx, sc); err != nil {
		return nil, err
	}
	return s.Get(ctx, sc.ID)
}

// Delete removes a class nobody is booked into. Cancelled bookings go with it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.schedules.Delete(ctx, id)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrScheduleBooked):
		return ErrHasBookings
	}
	return err
}
