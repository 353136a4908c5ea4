package repository

import (
	"context"

	"gorm.io/gorm"

	"gymstudio/internal/domain"
)

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// MemberFilter narrows List. A nil Active returns everyone.
type MemberFilter struct {
	Active *bool
	Limit  int
	Offset int
}

func (r *MemberRepository) Create(ctx context.Context, m *domain.Member) error {
	m.Email = normalizeEmail(m.Email)
	active := m.IsActive
	// gorm skips zero-valued fields that carry a default, so write false explicitly.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		if !active {
			m.IsActive = false
			return tx.Model(m).Update("is_active", false).Error
		}
		return nil
	})
}

func (r *MemberRepository) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	var m domain.Member
	if err := r.db.WithContext(ctx).Preload("MembershipType").First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MemberRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Member, error) {
	var m domain.Member
	tx := r.db.WithContext(ctx).
		Preload("MembershipType").
		Where("user_id = ?", userID).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &m, nil
}

func (r *MemberRepository) List(ctx context.Context, f MemberFilter) ([]domain.Member, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Member{})
	if f.Active != nil {
		q = q.Where("is_active = ?", *f.Active)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []domain.Member
	err := q.Preload("MembershipType").
		Order("id ASC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&out).Error
	return out, total, err
}

// Update writes every column of m, including zero values.
func (r *MemberRepository) Update(ctx context.Context, m *domain.Member) error {
	m.Email = normalizeEmail(m.Email)
	return r.db.WithContext(ctx).
		Model(&domain.Member{ID: m.ID}).
		Select("full_name", "email", "phone", "membership_type_id", "is_active").
		Updates(m).Error
}

func (r *MemberRepository) SetActive(ctx context.Context, id int64, active bool) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Member{}).
		Where("id = ?", id).
		Update("is_active", active)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
