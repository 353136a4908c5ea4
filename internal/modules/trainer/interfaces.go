package trainer

import (
	"context"

	"gymstudio/internal/domain"
)

type TrainerRepository interface {
	Create(ctx context.Context, t *domain.Trainer) error
	GetByID(ctx context.Context, id int64) (*domain.Trainer, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Trainer, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Trainer, error)
	UpdateProfile(ctx context.Context, t *domain.Trainer) error
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
