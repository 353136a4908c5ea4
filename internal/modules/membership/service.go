package membership

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"gymstudio/internal/domain"
)

type Service struct {
	repo MembershipTypeRepository
}

func NewService(repo MembershipTypeRepository) *Service {
	return &Service{repo: repo}
}

// ListPublic returns plans members can buy right now.
func (s *Service) ListPublic(ctx context.Context) ([]domain.MembershipType, error) {
	return nonNil(s.repo.List(ctx, true, false))
}

// ListAdmin returns every plan, including soft-deleted ones when withDeleted is set.
func (s *Service) ListAdmin(ctx context.Context, withDeleted bool) ([]domain.MembershipType, error) {
	return nonNil(s.repo.List(ctx, false, withDeleted))
}

func (s *Service) Create(ctx context.Context, req MembershipTypeRequest) (*domain.MembershipType, error) {
	mt := &domain.MembershipType{
		Name:         strings.TrimSpace(req.Name),
		MonthlyPrice: *req.MonthlyPrice,
		ClassLimit:   req.ClassLimit,
		IsActive:     req.IsActive == nil || *req.IsActive,
	}
	if err := s.repo.Create(ctx, mt); err != nil {
		return nil, err
	}
	return mt, nil
}

func (s *Service) Update(ctx context.Context, id int64, req MembershipTypeRequest) (*domain.MembershipType, error) {
	mt, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	mt.Name = strings.TrimSpace(req.Name)
	mt.MonthlyPrice = *req.MonthlyPrice
	mt.ClassLimit = req.ClassLimit
	if req.IsActive != nil {
		mt.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, mt); err != nil {
		return nil, err
	}
	return s.get(ctx, id)
}

// Delete is a soft delete. Members keep their reference to the plan.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.repo.SoftDelete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *Service) get(ctx context.Context, id int64) (*domain.MembershipType, error) {
	mt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return mt, nil
}

func nonNil(items []domain.MembershipType, err error) ([]domain.MembershipType, error) {
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.MembershipType{}
	}
	return items, nil
}
