package booking

import (
	"context"

	"gymstudio/internal/domain"
	"gymstudio/internal/repository"
)

// BookingRepository defines the interface for booking operations
type BookingRepository interface {
	CreateWithinLimits(ctx context.Context, b *domain.Booking, lim repository.BookingLimits) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByMember(ctx context.Context, memberID int64) ([]domain.Booking, error)
	List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, int64, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error
	SetAttendance(ctx context.Context, id int64, attended bool) error
}

type MemberReader interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Member, error)
}

type ScheduleReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
}
