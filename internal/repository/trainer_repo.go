package repository

import (
	"context"

	"gorm.io/gorm"

	"gymstudio/internal/domain"
)

type TrainerRepository struct {
	db *gorm.DB
}

func NewTrainerRepository(db *gorm.DB) *TrainerRepository {
	return &TrainerRepository{db: db}
}

func (r *TrainerRepository) Create(ctx context.Context, t *domain.Trainer) error {
	t.IsActive = true
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TrainerRepository) GetByID(ctx context.Context, id int64) (*domain.Trainer, error) {
	var t domain.Trainer
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TrainerRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Trainer, error) {
	var t domain.Trainer
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TrainerRepository) List(ctx context.Context, activeOnly bool) ([]domain.Trainer, error) {
	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var out []domain.Trainer
	err := q.Order("full_name ASC").Find(&out).Error
	return out, err
}

// UpdateProfile writes the self-service fields. Nil pointers clear the column.
func (r *TrainerRepository) UpdateProfile(ctx context.Context, t *domain.Trainer) error {
	return r.db.WithContext(ctx).
		Model(&domain.Trainer{ID: t.ID}).
		Select("full_name", "specialization", "experience_years").
		Updates(t).Error
}
