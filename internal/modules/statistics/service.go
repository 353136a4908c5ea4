package statistics

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"gymstudio/internal/domain"
)

var exportHeader = []string{
	"booking_id", "member", "email", "class", "trainer",
	"starts_at", "status", "is_attended", "used_free_class",
}

type Service struct {
	stats      StatsReader
	attendance AttendanceReader
	now        func() time.Time
}

func NewService(stats StatsReader, attendance AttendanceReader) *Service {
	return &Service{stats: stats, attendance: attendance, now: time.Now}
}

// Dashboard runs the aggregates concurrently. Each goroutine owns its own fields.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	now := s.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	out := &Dashboard{
		Month:       MonthStats{From: monthStart, To: monthEnd},
		GeneratedAt: now,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		out.Members.Total, out.Members.Active, err = s.stats.CountMembers(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		out.ActiveTrainers, err = s.stats.CountActiveTrainers(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		out.MembershipTypes, err = s.stats.CountMembershipTypes(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		out.TodayBookings, err = s.stats.CountLiveBookings(ctx, dayStart, dayStart.AddDate(0, 0, 1))
		return err
	})
	g.Go(func() error {
		counts, err := s.stats.BookingCountsBetween(ctx, monthStart, monthEnd)
		if err != nil {
			return err
		}
		out.Month.Confirmed = counts.ByStatus[domain.BookingConfirmed]
		out.Month.Cancelled = counts.ByStatus[domain.BookingCancelled]
		out.Month.Attended = counts.ByStatus[domain.BookingAttended]
		out.Month.FreeClassesUsed = counts.FreeUsed
		if live := out.Month.Confirmed + out.Month.Attended; live > 0 {
			out.Month.AttendanceRate = float64(counts.Attended) / float64(live)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		out.EstimatedMonthlyRevenue, err = s.stats.MonthlyRevenue(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ExportWindow turns inclusive YYYY-MM-DD bounds into [from, to). Missing
// bounds default to the current month.
func (s *Service) ExportWindow(from, to *time.Time) (time.Time, time.Time, error) {
	now := s.now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if from != nil {
		start = from.UTC()
	}
	end := start.AddDate(0, 1, 0)
	if to != nil {
		end = to.UTC().AddDate(0, 0, 1)
	}
	if !end.After(start) || end.Sub(start) > 366*24*time.Hour {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	return start, end, nil
}

// ExportAttendance writes one CSV row per booking for classes in [from, to).
func (s *Service) ExportAttendance(ctx context.Context, w io.Writer, from, to time.Time) error {
	rows, err := s.attendance.AttendanceBetween(ctx, from, to)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			strconv.FormatInt(r.BookingID, 10),
			r.MemberName,
			r.MemberEmail,
			r.ClassTitle,
			r.TrainerName,
			r.StartsAt.UTC().Format(time.RFC3339),
			r.Status,
			strconv.FormatBool(r.IsAttended),
			strconv.FormatBool(r.UsedFreeClass),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
