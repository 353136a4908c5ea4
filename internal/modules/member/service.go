package member

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"gymstudio/internal/database"
	"gymstudio/internal/domain"
	"gymstudio/internal/pkg/utils"
	"gymstudio/internal/pkg/validator"
	"gymstudio/internal/repository"
)

type Service struct {
	members MemberRepository
	plans   MembershipTypeReader
}

func NewService(members MemberRepository, plans MembershipTypeReader) *Service {
	return &Service{members: members, plans: plans}
}

func (s *Service) List(ctx context.Context, f ListFilter) (*ListResponse, error) {
	page, limit, offset := utils.Pagination(f.Page, f.Limit)

	items, total, err := s.members.List(ctx, repository.MemberFilter{
		Active: f.Active,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Member{}
	}
	return &ListResponse{Members: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Member, error) {
	m, err := s.members.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *Service) Create(ctx context.Context, req CreateMemberRequest) (*domain.Member, error) {
	phone, err := normalizeOptionalPhone(req.Phone)
	if err != nil {
		return nil, err
	}
	if err := s.checkPlan(ctx, req.MembershipTypeID); err != nil {
		return nil, err
	}

	m := &domain.Member{
		FullName:         strings.TrimSpace(req.FullName),
		Email:            req.Email,
		Phone:            phone,
		MembershipTypeID: req.MembershipTypeID,
		IsActive:         req.IsActive == nil || *req.IsActive,
	}
	if err := s.members.Create(ctx, m); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return s.Get(ctx, m.ID)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateMemberRequest) (*domain.Member, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkPlan(ctx, req.MembershipTypeID); err != nil {
		return nil, err
	}

	if req.Phone != nil {
		if m.Phone, err = validator.NormalizeOptionalPhone(*req.Phone); err != nil {
			return nil, err
		}
	}
	m.FullName = strings.TrimSpace(req.FullName)
	m.Email = req.Email
	m.MembershipTypeID = req.MembershipTypeID
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}

	if err := s.members.Update(ctx, m); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Deactivate(ctx context.Context, id int64) error {
	err := s.members.SetActive(ctx, id, false)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// GetMyProfile resolves the member record behind a login.
func (s *Service) GetMyProfile(ctx context.Context, userID int64) (*domain.Member, error) {
	m, err := s.members.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoProfile
		}
		return nil, err
	}
	return m, nil
}

func (s *Service) UpdateMyProfile(ctx context.Context, userID int64, req UpdateMemberProfileRequest) (*domain.Member, error) {
	m, err := s.GetMyProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	m.FullName = strings.TrimSpace(req.FullName)
	if req.Phone != nil {
		if m.Phone, err = validator.NormalizeOptionalPhone(*req.Phone); err != nil {
			return nil, err
		}
	}

	if err := s.members.Update(ctx, m); err != nil {
		return nil, err
	}
	return s.GetMyProfile(ctx, userID)
}

func (s *Service) checkPlan(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	if _, err := s.plans.GetByID(ctx, *id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMembershipTypeNotFound
		}
		return err
	}
	return nil
}

func normalizeOptionalPhone(raw *string) (string, error) {
	if raw == nil {
		return "", nil
	}
	return validator.NormalizeOptionalPhone(*raw)
}
