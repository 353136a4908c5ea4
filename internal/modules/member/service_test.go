package member

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymstudio/internal/domain"
	"gymstudio/internal/pkg/validator"
	"gymstudio/internal/repository"
	"gymstudio/internal/testutil"
)

func newTestService(t *testing.T) (*Service, *repository.MembershipTypeRepository, *repository.UserRepository) {
	db := testutil.DB(t)
	plans := repository.NewMembershipTypeRepository(db)
	return NewService(repository.NewMemberRepository(db), plans), plans, repository.NewUserRepository(db)
}

func strPtr(s string) *string { return &s }

func TestService_CreateAndList(t *testing.T) {
	svc, plans, _ := newTestService(t)
	ctx := context.Background()

	plan := &domain.MembershipType{Name: "Monthly", MonthlyPrice: 1200000, ClassLimit: 12, IsActive: true}
	require.NoError(t, plans.Create(ctx, plan))

	inactive := false
	_, err := svc.Create(ctx, CreateMemberRequest{FullName: "Aru", Email: "aru@gym.kz", MembershipTypeID: &plan.ID})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateMemberRequest{FullName: "Dana", Email: "dana@gym.kz", IsActive: &inactive})
	require.NoError(t, err)

	active := true
	out, err := svc.List(ctx, ListFilter{Active: &active})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)
	require.Len(t, out.Members, 1)
	require.NotNil(t, out.Members[0].MembershipType)
	assert.Equal(t, "Monthly", out.Members[0].MembershipType.Name)

	all, err := svc.List(ctx, ListFilter{Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)
	assert.Len(t, all.Members, 1)
}

func TestService_CreateRejectsDuplicateEmailAndUnknownPlan(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateMemberRequest{FullName: "Aru", Email: "aru@gym.kz"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateMemberRequest{FullName: "Aru 2", Email: "ARU@gym.kz"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	missing := int64(404)
	_, err = svc.Create(ctx, CreateMemberRequest{FullName: "Bek", Email: "bek@gym.kz", MembershipTypeID: &missing})
	assert.ErrorIs(t, err, ErrMembershipTypeNotFound)
}

func TestService_Deactivate(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, CreateMemberRequest{FullName: "Aru", Email: "aru@gym.kz"})
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(ctx, m.ID))

	got, err := svc.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	assert.ErrorIs(t, svc.Deactivate(ctx, 9999), ErrNotFound)
}

func TestService_UpdateMyProfile(t *testing.T) {
	prev := validator.PhoneRegion()
	validator.SetPhoneRegion("US")
	t.Cleanup(func() { validator.SetPhoneRegion(prev) })

	svc, _, users := newTestService(t)
	ctx := context.Background()

	u := &domain.User{Email: "me@gym.kz", PasswordHash: "x", Role: domain.RoleMember}
	require.NoError(t, users.Create(ctx, u))
	_, err := svc.GetMyProfile(ctx, u.ID)
	require.ErrorIs(t, err, ErrNoProfile)

	require.NoError(t, users.DB().Create(&domain.Member{UserID: &u.ID, FullName: "Old", Email: "me@gym.kz", Phone: "+77011234567", IsActive: true}).Error)

	got, err := svc.UpdateMyProfile(ctx, u.ID, UpdateMemberProfileRequest{FullName: "  New Name "})
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.FullName)
	assert.Equal(t, "+77011234567", got.Phone, "nil phone keeps the stored number")

	got, err = svc.UpdateMyProfile(ctx, u.ID, UpdateMemberProfileRequest{FullName: "New Name", Phone: strPtr("(650) 253-0000")})
	require.NoError(t, err)
	assert.Equal(t, "+16502530000", got.Phone)

	got, err = svc.UpdateMyProfile(ctx, u.ID, UpdateMemberProfileRequest{FullName: "New Name", Phone: strPtr("")})
	require.NoError(t, err)
	assert.Empty(t, got.Phone, "empty phone clears the stored number")
}
