package statistics

import (
	"context"
	"time"

	"gymstudio/internal/repository"
)

type StatsReader interface {
	CountMembers(ctx context.Context) (total, active int64, err error)
	CountActiveTrainers(ctx context.Context) (int64, error)
	CountMembershipTypes(ctx context.Context) (int64, error)
	CountLiveBookings(ctx context.Context, from, to time.Time) (int64, error)
	BookingCountsBetween(ctx context.Context, from, to time.Time) (repository.BookingCounts, error)
	MonthlyRevenue(ctx context.Context) (int64, error)
}

type AttendanceReader interface {
	AttendanceBetween(ctx context.Context, from, to time.Time) ([]repository.AttendanceRow, error)
}
