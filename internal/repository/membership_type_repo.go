package repository

import (
	"context"

	"gorm.io/gorm"

	"gymstudio/internal/domain"
)

type MembershipTypeRepository struct {
	db *gorm.DB
}

func NewMembershipTypeRepository(db *gorm.DB) *MembershipTypeRepository {
	return &MembershipTypeRepository{db: db}
}

func (r *MembershipTypeRepository) Create(ctx context.Context, mt *domain.MembershipType) error {
	active := mt.IsActive
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(mt).Error; err != nil {
			return err
		}
		if !active {
			mt.IsActive = false
			return tx.Model(mt).Update("is_active", false).Error
		}
		return nil
	})
}

func (r *MembershipTypeRepository) GetByID(ctx context.Context, id int64) (*domain.MembershipType, error) {
	var mt domain.MembershipType
	if err := r.db.WithContext(ctx).First(&mt, id).Error; err != nil {
		return nil, err
	}
	return &mt, nil
}

// List returns plans ordered by price. Soft-deleted rows are only included
// when withDeleted is set.
func (r *MembershipTypeRepository) List(ctx context.Context, activeOnly, withDeleted bool) ([]domain.MembershipType, error) {
	q := r.db.WithContext(ctx)
	if withDeleted {
		q = q.Unscoped()
	}
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var out []domain.MembershipType
	err := q.Order("monthly_price ASC, id ASC").Find(&out).Error
	return out, err
}

func (r *MembershipTypeRepository) Update(ctx context.Context, mt *domain.MembershipType) error {
	return r.db.WithContext(ctx).
		Model(&domain.MembershipType{ID: mt.ID}).
		Select("name", "monthly_price", "class_limit", "is_active").
		Updates(mt).Error
}

// SoftDelete clears is_active and stamps deleted_at. The row stays.
func (r *MembershipTypeRepository) SoftDelete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.MembershipType{}).Where("id = ?", id).Update("is_active", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Delete(&domain.MembershipType{}, id).Error
	})
}
