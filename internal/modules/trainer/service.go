package trainer

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"gymstudio/internal/database"
	"gymstudio/internal/domain"
)

type Service struct {
	repo  TrainerRepository
	users UserReader
}

func NewService(repo TrainerRepository, users UserReader) *Service {
	return &Service{repo: repo, users: users}
}

func (s *Service) List(ctx context.Context) ([]domain.Trainer, error) {
	items, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Trainer{}
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Trainer, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// Create adds a trainer, optionally linked to a login that has the trainer role.
func (s *Service) Create(ctx context.Context, req CreateTrainerRequest) (*domain.Trainer, error) {
	if req.UserID != nil {
		if err := s.checkUser(ctx, *req.UserID); err != nil {
			return nil, err
		}
	}

	t := &domain.Trainer{
		UserID:          req.UserID,
		FullName:        strings.TrimSpace(req.FullName),
		Specialization:  trimmed(req.Specialization),
		ExperienceYears: req.ExperienceYears,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrUserAssigned
		}
		return nil, err
	}
	return t, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateTrainerProfileRequest) (*domain.Trainer, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, t, req)
}

// UpdateMyProfile edits the trainer profile linked to userID.
func (s *Service) UpdateMyProfile(ctx context.Context, userID int64, req UpdateTrainerProfileRequest) (*domain.Trainer, error) {
	t, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoProfile
		}
		return nil, err
	}
	return s.apply(ctx, t, req)
}

func (s *Service) apply(ctx context.Context, t *domain.Trainer, req UpdateTrainerProfileRequest) (*domain.Trainer, error) {
	t.FullName = strings.TrimSpace(req.FullName)
	t.Specialization = trimmed(req.Specialization)
	t.ExperienceYears = req.ExperienceYears

	if err := s.repo.UpdateProfile(ctx, t); err != nil {
		return nil, err
	}
	return s.Get(ctx, t.ID)
}

func (s *Service) checkUser(ctx context.Context, id int64) error {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if u.Role != domain.RoleTrainer {
		return ErrNotTrainer
	}
	return nil
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	return &s
}
