package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"gymstudio/internal/domain"
	"gymstudio/internal/pkg/utils"
	"gymstudio/internal/repository"
)

type Service struct {
	bookings  BookingRepository
	members   MemberReader
	schedules ScheduleReader
	now       func() time.Time
}

func NewService(bookings BookingRepository, members MemberReader, schedules ScheduleReader) *Service {
	return &Service{
		bookings:  bookings,
		members:   members,
		schedules: schedules,
		now:       time.Now,
	}
}

// Create books the caller's member profile into a class. Capacity, duplicates
// and the plan's monthly class limit are checked in one transaction.
func (s *Service) Create(ctx context.Context, userID int64, req CreateBookingRequest) (*domain.Booking, error) {
	m, err := s.member(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !m.IsActive {
		return nil, ErrMemberInactive
	}

	sc, err := s.schedules.GetByID(ctx, req.ScheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}

	now := s.now().UTC()
	if !sc.StartsAt.After(now) {
		return nil, ErrClassStarted
	}

	lim := repository.BookingLimits{Capacity: sc.Capacity}
	// soft-deleted plans don't preload, so a member on one books without a limit
	if m.MembershipType != nil && !m.MembershipType.Unlimited() {
		starts := sc.StartsAt.UTC()
		lim.MonthlyLimit = m.MembershipType.ClassLimit
		lim.MonthStart = time.Date(starts.Year(), starts.Month(), 1, 0, 0, 0, 0, time.UTC)
		lim.MonthEnd = lim.MonthStart.AddDate(0, 1, 0)
	}

	b := &domain.Booking{
		MemberID:      m.ID,
		ScheduleID:    sc.ID,
		BookedAt:      now,
		UsedFreeClass: req.UsedFreeClass,
		Status:        domain.BookingConfirmed,
	}
	if err := s.bookings.CreateWithinLimits(ctx, b, lim); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateBooking):
			return nil, ErrAlreadyBooked
		case errors.Is(err, repository.ErrClassFull):
			return nil, ErrClassFull
		case errors.Is(err, repository.ErrClassLimitReached):
			return nil, ErrClassLimitReached
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}

	return s.get(ctx, b.ID)
}

// ListMine returns the caller's bookings, newest class first.
func (s *Service) ListMine(ctx context.Context, userID int64) ([]domain.Booking, error) {
	m, err := s.member(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.bookings.ListByMember(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Booking{}
	}
	return items, nil
}

// Cancel lets a member cancel their own booking before the class starts.
func (s *Service) Cancel(ctx context.Context, userID, bookingID int64) (*domain.Booking, error) {
	m, err := s.member(ctx, userID)
	if err != nil {
		return nil, err
	}

	b, err := s.get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.MemberID != m.ID {
		return nil, ErrForbidden
	}
	if b.Schedule != nil && !b.Schedule.StartsAt.After(s.now()) {
		return nil, ErrClassStarted
	}

	return s.transition(ctx, b, domain.BookingCancelled)
}

func (s *Service) List(ctx context.Context, f ListFilter) (*ListResponse, error) {
	page, limit, offset := utils.Pagination(f.Page, f.Limit)

	items, total, err := s.bookings.List(ctx, repository.BookingFilter{
		ScheduleID: f.ScheduleID,
		Status:     f.Status,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Booking{}
	}
	return &ListResponse{Bookings: items, Total: total, Page: page, Limit: limit}, nil
}

// UpdateStatus is the admin status change. Only confirmed bookings move,
// to cancelled or attended. The attendance and free-class flags are left alone.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, next domain.BookingStatus) (*domain.Booking, error) {
	if !next.Valid() {
		return nil, ErrInvalidStatusTransition
	}

	b, err := s.get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, b, next)
}

// SetAttendance records whether the member showed up, whatever the status.
func (s *Service) SetAttendance(ctx context.Context, bookingID int64, attended bool) (*domain.Booking, error) {
	err := s.bookings.SetAttendance(ctx, bookingID, attended)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.get(ctx, bookingID)
}

func (s *Service) transition(ctx context.Context, b *domain.Booking, next domain.BookingStatus) (*domain.Booking, error) {
	if !b.Status.CanTransitionTo(next) {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.bookings.UpdateStatus(ctx, b.ID, b.Status, next); err != nil {
		if errors.Is(err, repository.ErrStatusChanged) {
			return nil, ErrInvalidStatusTransition
		}
		return nil, err
	}
	return s.get(ctx, b.ID)
}

func (s *Service) member(ctx context.Context, userID int64) (*domain.Member, error) {
	m, err := s.members.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoMemberProfile
		}
		return nil, err
	}
	return m, nil
}

func (s *Service) get(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}
