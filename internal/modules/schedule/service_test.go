package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gymstudio/internal/domain"
	"gymstudio/internal/repository"
	"gymstudio/internal/testutil"
)

type env struct {
	db       *gorm.DB
	svc      *Service
	trainer  *domain.Trainer
	bookings *repository.BookingRepository
	members  *repository.MemberRepository
}

func newEnv(t *testing.T) *env {
	db := testutil.DB(t)
	trainers := repository.NewTrainerRepository(db)
	tr := &domain.Trainer{FullName: "Coach"}
	require.NoError(t, trainers.Create(context.Background(), tr))

	bookings := repository.NewBookingRepository(db)
	return &env{
		db:       db,
		svc:      NewService(repository.NewScheduleRepository(db), trainers),
		trainer:  tr,
		bookings: bookings,
		members:  repository.NewMemberRepository(db),
	}
}

func TestService_Window(t *testing.T) {
	svc := &Service{now: func() time.Time { return time.Date(2026, 10, 17, 15, 30, 0, 0, time.UTC) }}

	from, to, err := svc.Window(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 10, 24, 0, 0, 0, 0, time.UTC), to)

	a := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	_, _, err = svc.Window(&a, &a)
	assert.ErrorIs(t, err, ErrInvalidRange)

	far := a.AddDate(0, 6, 0)
	_, _, err = svc.Window(&a, &far)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestService_CreateAndList(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	start := time.Now().Add(2 * time.Hour).Truncate(time.Minute)

	sc, err := e.svc.Create(ctx, CreateScheduleRequest{TrainerID: e.trainer.ID, Title: "HIIT", StartsAt: start, EndsAt: start.Add(time.Hour), Capacity: 12})
	require.NoError(t, err)
	require.NotNil(t, sc.Trainer)
	assert.Equal(t, "Coach", sc.Trainer.FullName)

	_, err = e.svc.Create(ctx, CreateScheduleRequest{TrainerID: 999, Title: "HIIT", StartsAt: start, EndsAt: start.Add(time.Hour), Capacity: 12})
	assert.ErrorIs(t, err, ErrTrainerNotFound)

	past := time.Now().Add(-time.Hour)
	_, err = e.svc.Create(ctx, CreateScheduleRequest{TrainerID: e.trainer.ID, Title: "Old", StartsAt: past, EndsAt: past.Add(time.Hour), Capacity: 1})
	assert.ErrorIs(t, err, ErrInPast)

	m := &domain.Member{FullName: "Aru", Email: "aru@gym.kz", IsActive: true}
	require.NoError(t, e.members.Create(ctx, m))
	require.NoError(t, e.bookings.CreateWithinLimits(ctx, &domain.Booking{
		MemberID: m.ID, ScheduleID: sc.ID, BookedAt: time.Now().UTC(), Status: domain.BookingConfirmed,
	}, repository.BookingLimits{Capacity: sc.Capacity}))

	slots, err := e.svc.List(ctx, start.Add(-time.Hour), start.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, int64(1), slots[0].Booked)

	assert.ErrorIs(t, e.svc.Delete(ctx, sc.ID), ErrHasBookings)
}

func TestService_Delete(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	start := time.Now().Add(24 * time.Hour)

	sc, err := e.svc.Create(ctx, CreateScheduleRequest{TrainerID: e.trainer.ID, Title: "Yoga", StartsAt: start, EndsAt: start.Add(time.Hour), Capacity: 5})
	require.NoError(t, err)

	require.NoError(t, e.svc.Delete(ctx, sc.ID))
	assert.ErrorIs(t, e.svc.Delete(ctx, sc.ID), ErrNotFound)
}

func TestService_DeleteDropsCancelledBookings(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	start := time.Now().Add(24 * time.Hour)

	sc, err := e.svc.Create(ctx, CreateScheduleRequest{TrainerID: e.trainer.ID, Title: "Spin", StartsAt: start, EndsAt: start.Add(time.Hour), Capacity: 5})
	require.NoError(t, err)

	m := &domain.Member{FullName: "Aru", Email: "aru@gym.kz", IsActive: true}
	require.NoError(t, e.members.Create(ctx, m))
	b := &domain.Booking{MemberID: m.ID, ScheduleID: sc.ID, BookedAt: time.Now().UTC(), Status: domain.BookingConfirmed}
	require.NoError(t, e.bookings.CreateWithinLimits(ctx, b, repository.BookingLimits{Capacity: sc.Capacity}))
	require.NoError(t, e.bookings.UpdateStatus(ctx, b.ID, domain.BookingConfirmed, domain.BookingCancelled))

	require.NoError(t, e.svc.Delete(ctx, sc.ID))

	var left int64
	require.NoError(t, e.db.Model(&domain.Booking{}).Where("schedule_id = ?", sc.ID).Count(&left).Error)
	assert.Zero(t, left)

	mine, err := e.bookings.ListByMember(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)
}
