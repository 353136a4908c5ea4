package membership

import (
	"context"

	"gymstudio/internal/domain"
)

type MembershipTypeRepository interface {
	Create(ctx context.Context, mt *domain.MembershipType) error
	GetByID(ctx context.Context, id int64) (*domain.MembershipType, error)
	List(ctx context.Context, activeOnly, withDeleted bool) ([]domain.MembershipType, error)
	Update(ctx context.Context, mt *domain.MembershipType) error
	SoftDelete(ctx context.Context, id int64) error
}
