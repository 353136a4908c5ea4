package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gymstudio/internal/domain"
	"gymstudio/internal/testutil"
)

type fixture struct {
	db       *gorm.DB
	members  *MemberRepository
	types    *MembershipTypeRepository
	trainers *TrainerRepository
	classes  *ScheduleRepository
	bookings *BookingRepository
	stats    *StatsRepository
}

func newFixture(t *testing.T) *fixture {
	db := testutil.DB(t)
	return &fixture{
		db:       db,
		members:  NewMemberRepository(db),
		types:    NewMembershipTypeRepository(db),
		trainers: NewTrainerRepository(db),
		classes:  NewScheduleRepository(db),
		bookings: NewBookingRepository(db),
		stats:    NewStatsRepository(db),
	}
}

func (f *fixture) member(t *testing.T, email string, planID *int64) *domain.Member {
	m := &domain.Member{FullName: "Member " + email, Email: email, MembershipTypeID: planID, IsActive: true}
	require.NoError(t, f.members.Create(context.Background(), m))
	return m
}

func (f *fixture) class(t *testing.T, startsAt time.Time, capacity int) *domain.Schedule {
	tr := &domain.Trainer{FullName: "Coach"}
	require.NoError(t, f.trainers.Create(context.Background(), tr))

	s := &domain.Schedule{
		TrainerID: tr.ID,
		Title:     "Crossfit",
		StartsAt:  startsAt.UTC(),
		EndsAt:    startsAt.Add(time.Hour).UTC(),
		Capacity:  capacity,
	}
	require.NoError(t, f.classes.Create(context.Background(), s))
	return s
}

func book(memberID, scheduleID int64) *domain.Booking {
	return &domain.Booking{
		MemberID:   memberID,
		ScheduleID: scheduleID,
		BookedAt:   time.Now().UTC(),
		Status:     domain.BookingConfirmed,
	}
}

func monthOf(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func TestMembershipTypeSoftDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mt := &domain.MembershipType{Name: "Basic", MonthlyPrice: 1500000, ClassLimit: 8, IsActive: true}
	require.NoError(t, f.types.Create(ctx, mt))
	require.NoError(t, f.types.SoftDelete(ctx, mt.ID))

	_, err := f.types.GetByID(ctx, mt.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	live, err := f.types.List(ctx, false, false)
	require.NoError(t, err)
	assert.Empty(t, live)

	all, err := f.types.List(ctx, false, true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].DeletedAt.Valid)
	assert.False(t, all[0].IsActive)

	assert.ErrorIs(t, f.types.SoftDelete(ctx, mt.ID), gorm.ErrRecordNotFound)
}

func TestMembershipTypeCreateInactive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mt := &domain.MembershipType{Name: "Legacy", MonthlyPrice: 100, IsActive: false}
	require.NoError(t, f.types.Create(ctx, mt))

	got, err := f.types.GetByID(ctx, mt.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	active, err := f.types.List(ctx, true, false)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestCreateWithinLimits_Capacity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	class := f.class(t, time.Now().Add(24*time.Hour), 1)
	a := f.member(t, "a@gym.kz", nil)
	b := f.member(t, "b@gym.kz", nil)
	lim := BookingLimits{Capacity: class.Capacity}

	require.NoError(t, f.bookings.CreateWithinLimits(ctx, book(a.ID, class.ID), lim))
	assert.ErrorIs(t, f.bookings.CreateWithinLimits(ctx, book(a.ID, class.ID), lim), ErrDuplicateBooking)
	assert.ErrorIs(t, f.bookings.CreateWithinLimits(ctx, book(b.ID, class.ID), lim), ErrClassFull)
}

func TestCreateWithinLimits_ConcurrentRequestsRespectCapacity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	class := f.class(t, time.Now().Add(24*time.Hour), 3)
	lim := BookingLimits{Capacity: class.Capacity}

	members := make([]*domain.Member, 8)
	for i := range members {
		members[i] = f.member(t, string(rune('a'+i))+"@gym.kz", nil)
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		booked  int
		refused int
	)
	for _, m := range members {
		wg.Add(1)
		go func(memberID int64) {
			defer wg.Done()
			err := f.bookings.CreateWithinLimits(ctx, book(memberID, class.ID), lim)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				booked++
			case errors.Is(err, ErrClassFull):
				refused++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(m.ID)
	}
	wg.Wait()

	assert.Equal(t, 3, booked)
	assert.Equal(t, 5, refused)

	live, err := f.bookings.CountLive(ctx, class.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), live)
}

func TestCreateWithinLimits_MissingClass(t *testing.T) {
	f := newFixture(t)
	m := f.member(t, "ghost@gym.kz", nil)

	err := f.bookings.CreateWithinLimits(context.Background(), book(m.ID, 404), BookingLimits{Capacity: 1})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestScheduleDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	class := f.class(t, time.Now().Add(24*time.Hour), 5)
	a := f.member(t, "a@gym.kz", nil)
	b := f.member(t, "b@gym.kz", nil)

	kept := book(a.ID, class.ID)
	cancelled := book(b.ID, class.ID)
	require.NoError(t, f.bookings.CreateWithinLimits(ctx, kept, BookingLimits{Capacity: 5}))
	require.NoError(t, f.bookings.CreateWithinLimits(ctx, cancelled, BookingLimits{Capacity: 5}))
	require.NoError(t, f.bookings.UpdateStatus(ctx, cancelled.ID, domain.BookingConfirmed, domain.BookingCancelled))

	assert.ErrorIs(t, f.classes.Delete(ctx, class.ID), ErrScheduleBooked)
	_, err := f.bookings.GetByID(ctx, cancelled.ID)
	require.NoError(t, err, "a refused delete keeps every booking")

	require.NoError(t, f.bookings.UpdateStatus(ctx, kept.ID, domain.BookingConfirmed, domain.BookingCancelled))
	require.NoError(t, f.classes.Delete(ctx, class.ID))

	var left int64
	require.NoError(t, f.db.Model(&domain.Booking{}).Where("schedule_id = ?", class.ID).Count(&left).Error)
	assert.Zero(t, left)

	assert.ErrorIs(t, f.classes.Delete(ctx, class.ID), gorm.ErrRecordNotFound)
}

func TestCreateWithinLimits_MonthlyLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	from, to := monthOf(time.Now().UTC().AddDate(0, 1, 0))
	startsAt := from.Add(10 * time.Hour)
	m := f.member(t, "limit@gym.kz", nil)
	first := f.class(t, startsAt, 10)
	second := f.class(t, startsAt.Add(time.Hour), 10)

	lim := BookingLimits{Capacity: 10, MonthlyLimit: 1, MonthStart: from, MonthEnd: to}
	require.NoError(t, f.bookings.CreateWithinLimits(ctx, book(m.ID, first.ID), lim))
	assert.ErrorIs(t, f.bookings.CreateWithinLimits(ctx, book(m.ID, second.ID), lim), ErrClassLimitReached)

	free := book(m.ID, second.ID)
	free.UsedFreeClass = true
	assert.NoError(t, f.bookings.CreateWithinLimits(ctx, free, lim))
}

func TestCancelledBookingKeepsAttendanceFlag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	class := f.class(t, time.Now().Add(time.Hour), 5)
	m := f.member(t, "flags@gym.kz", nil)
	b := book(m.ID, class.ID)
	require.NoError(t, f.bookings.CreateWithinLimits(ctx, b, BookingLimits{Capacity: 5}))

	require.NoError(t, f.bookings.UpdateStatus(ctx, b.ID, domain.BookingConfirmed, domain.BookingCancelled))
	require.NoError(t, f.bookings.SetAttendance(ctx, b.ID, true))

	got, err := f.bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, got.Status)
	assert.True(t, got.IsAttended)

	assert.ErrorIs(t, f.bookings.UpdateStatus(ctx, b.ID, domain.BookingConfirmed, domain.BookingAttended), ErrStatusChanged)
}

func TestDueForReminder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := time.Now().UTC()

	soon := f.class(t, now.Add(30*time.Minute), 5)
	later := f.class(t, now.Add(5*time.Hour), 5)
	m := f.member(t, "remind@gym.kz", nil)

	b1 := book(m.ID, soon.ID)
	b2 := book(m.ID, later.ID)
	require.NoError(t, f.bookings.CreateWithinLimits(ctx, b1, BookingLimits{Capacity: 5}))
	require.NoError(t, f.bookings.CreateWithinLimits(ctx, b2, BookingLimits{Capacity: 5}))

	due, err := f.bookings.DueForReminder(ctx, now, now.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, b1.ID, due[0].ID)
	require.NotNil(t, due[0].Schedule)
	assert.Equal(t, "Crossfit", due[0].Schedule.Title)

	require.NoError(t, f.bookings.MarkReminded(ctx, []int64{b1.ID}, now))
	due, err = f.bookings.DueForReminder(ctx, now, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestStatsAggregates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	plan := &domain.MembershipType{Name: "Pro", MonthlyPrice: 2000000, IsActive: true}
	require.NoError(t, f.types.Create(ctx, plan))
	f.member(t, "one@gym.kz", &plan.ID)
	inactive := f.member(t, "two@gym.kz", &plan.ID)
	require.NoError(t, f.members.SetActive(ctx, inactive.ID, false))

	total, active, err := f.stats.CountMembers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, int64(1), active)

	revenue, err := f.stats.MonthlyRevenue(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2000000), revenue)
}
