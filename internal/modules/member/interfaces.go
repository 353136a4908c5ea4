package member

import (
	"context"

	"gymstudio/internal/domain"
	"gymstudio/internal/repository"
)

type MemberRepository interface {
	Create(ctx context.Context, m *domain.Member) error
	GetByID(ctx context.Context, id int64) (*domain.Member, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Member, error)
	List(ctx context.Context, f repository.MemberFilter) ([]domain.Member, int64, error)
	Update(ctx context.Context, m *domain.Member) error
	SetActive(ctx context.Context, id int64, active bool) error
}

type MembershipTypeReader interface {
	GetByID(ctx context.Context, id int64) (*domain.MembershipType, error)
}
