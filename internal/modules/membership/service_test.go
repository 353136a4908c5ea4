package membership

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gymstudio/internal/domain"
	"gymstudio/internal/repository"
	"gymstudio/internal/testutil"
)

func price(v int64) *int64 { return &v }

func TestService_SoftDeleteKeepsRow(t *testing.T) {
	db := testutil.DB(t)
	svc := NewService(repository.NewMembershipTypeRepository(db))
	ctx := context.Background()

	basic, err := svc.Create(ctx, MembershipTypeRequest{Name: "Basic", MonthlyPrice: price(900000), ClassLimit: 8})
	require.NoError(t, err)
	_, err = svc.Create(ctx, MembershipTypeRequest{Name: "Unlimited", MonthlyPrice: price(1900000)})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, basic.ID))

	public, err := svc.ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "Unlimited", public[0].Name)
	assert.True(t, public[0].Unlimited())

	all, err := svc.ListAdmin(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	var row domain.MembershipType
	require.NoError(t, db.Unscoped().First(&row, basic.ID).Error)
	assert.True(t, row.DeletedAt.Valid)
	assert.False(t, row.IsActive)

	assert.ErrorIs(t, svc.Delete(ctx, basic.ID), ErrNotFound)
}

func TestService_UpdateCanDeactivate(t *testing.T) {
	db := testutil.DB(t)
	svc := NewService(repository.NewMembershipTypeRepository(db))
	ctx := context.Background()

	mt, err := svc.Create(ctx, MembershipTypeRequest{Name: "Basic", MonthlyPrice: price(900000), ClassLimit: 8})
	require.NoError(t, err)

	off := false
	got, err := svc.Update(ctx, mt.ID, MembershipTypeRequest{Name: "Basic+", MonthlyPrice: price(0), ClassLimit: 10, IsActive: &off})
	require.NoError(t, err)
	assert.Equal(t, "Basic+", got.Name)
	assert.Equal(t, int64(0), got.MonthlyPrice)
	assert.False(t, got.IsActive)

	_, err = svc.Update(ctx, 999, MembershipTypeRequest{Name: "x", MonthlyPrice: price(1)})
	assert.ErrorIs(t, err, ErrNotFound)
}

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, mt *domain.MembershipType) error {
	return m.Called(ctx, mt).Error(0)
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*domain.MembershipType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MembershipType), args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, activeOnly, withDeleted bool) ([]domain.MembershipType, error) {
	args := m.Called(ctx, activeOnly, withDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MembershipType), args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, mt *domain.MembershipType) error {
	return m.Called(ctx, mt).Error(0)
}

func (m *mockRepo) SoftDelete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func TestService_ListPublicNeverNil(t *testing.T) {
	repo := new(mockRepo)
	repo.On("List", mock.Anything, true, false).Return(nil, nil)

	items, err := NewService(repo).ListPublic(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	repo.AssertExpectations(t)
}

func TestService_DeletePropagatesErrors(t *testing.T) {
	repo := new(mockRepo)
	boom := errors.New("db down")
	repo.On("SoftDelete", mock.Anything, int64(1)).Return(boom)
	repo.On("SoftDelete", mock.Anything, int64(2)).Return(gorm.ErrRecordNotFound)

	svc := NewService(repo)
	assert.ErrorIs(t, svc.Delete(context.Background(), 1), boom)
	assert.ErrorIs(t, svc.Delete(context.Background(), 2), ErrNotFound)
}
