package schedule

import (
	"context"
	"time"

	"gymstudio/internal/domain"
	"gymstudio/internal/repository"
)

type ScheduleRepository interface {
	Create(ctx context.Context, s *domain.Schedule) error
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]repository.ScheduleSlot, error)
	// Delete also drops the class's cancelled bookings and refuses while live ones remain.
	Delete(ctx context.Context, id int64) error
}

type TrainerReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Trainer, error)
}
