package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/studysphere/backend/internal/domain"
	apperrors "github.com/studysphere/backend/pkg/errors"
)

// --- Mock Group Repository ---

type mockGroupRepository struct {
	mock.Mock
}

func (m *mockGroupRepository) Create(ctx context.Context, group *domain.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *mockGroupRepository) GetByName(ctx context.Context, name string) (*domain.Group, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *mockGroupRepository) List(ctx context.Context) ([]domain.Group, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Group), args.Error(1)
}

func (m *mockGroupRepository) Update(ctx context.Context, group *domain.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *mockGroupRepository) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func newTestGroupService(groups *mockGroupRepository) *GroupService {
	return NewGroupService(groups, newTestEventProducer(), newTestLogger())
}

func strPtr(s string) *string {
	return &s
}

// --- Create Tests ---

func TestGroupCreate_Success(t *testing.T) {
	groups := new(mockGroupRepository)
	svc := newTestGroupService(groups)
	ctx := context.Background()
	ownerID := uuid.New().String()

	groups.On("Create", ctx, mock.AnythingOfType("*domain.Group")).Return(nil)

	group, err := svc.Create(ctx, ownerID, CreateGroupInput{
		Name:        "  compilers-101  ",
		Description: "weekly compiler study sessions",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, group.ID)
	assert.Equal(t, ownerID, group.OwnerID)
	assert.Equal(t, "compilers-101", group.Name, "name should be trimmed")
	assert.Equal(t, domain.JoinTypePublic, group.JoinType)
	assert.Equal(t, domain.PostPermissionAll, group.PostPermission)
	assert.Equal(t, domain.EditPermissionsOwner, group.EditPermissions)
	assert.NotZero(t, group.CreatedAt)
	groups.AssertExpectations(t)
}

func TestGroupCreate_EmptyName(t *testing.T) {
	groups := new(mockGroupRepository)
	svc := newTestGroupService(groups)

	_, err := svc.Create(context.Background(), uuid.New().String(), CreateGroupInput{Name: "   "})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.Contains(t, err.Error(), "Group name cannot be empty")
	groups.AssertNotCalled(t, "Create")
}

func TestGroupCreate_NameTooLong(t *testing.T) {
	groups := new(mockGroupRepository)
	svc := newTestGroupService(groups)

	_, err := svc.Create(context.Background(), uuid.New().String(), CreateGroupInput{
		Name: strings.Repeat("g", 101),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestGroupCreate_DuplicateName(t *testing.T) {
	groups := new(mockGroupRepository)
	svc := newTestGroupService(groups)
	ctx := context.Background()

	groups.On("Create", ctx, mock.AnythingOfType("*domain.Group")).
		Return(apperrors.AlreadyExists("group", "name", "compilers-101"))

	_, err := svc.Create(ctx, uuid.New().String(), CreateGroupInput{Name: "compilers-101"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.Contains(t, err.Error(), "Group name already taken")
}

// --- GetByName / List Tests ---

func TestGroupGetByName_NotFound(t *testing.T) {
	groups := new(mockGroupRepository)
	svc := newTestGroupService(groups)
	ctx := context.Background()

	groups.On("GetByName", ctx, "missing").Return(nil, apperrors.ErrNotFound)

	_, err := svc.GetByName(ctx, "missing")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestGroupList_Success(t *testing.T) {
	groups := new(mockGroupRepository)
	svc := newTestGroupService(groups)
	ctx := context.Background()

	groups.On("List", ctx).Return([]domain.Group{
		{ID: uuid.New().String(), Name: "databases-201"},
		{ID: uuid.New().String(), Name: "compilers-101"},
	}, nil)

	got, err := svc.List(ctx)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "databases-201", got[0].Name)
}

// --- Update Tests ---

func TestGroupUpdate_Success(t *testing.T) {
	groups := new(mockGroupRepository)
	svc := newTestGroupService(groups)
	ctx := context.Background()

	existing := &domain.Group{
		ID:              uuid.New().String(),
		OwnerID:         uuid.New().String(),
		Name:            "compilers-101",
		Description:     "old",
		JoinType:        domain.JoinTypePublic,
		PostPermission:  domain.PostPermissionAll,
		EditPermissions: domain.EditPermissionsOwner,
	}
	groups.On("GetByName", ctx, "compilers-101").Return(existing, nil)
	groups.On("Update", ctx, mock.AnythingOfType("*domain.Group")).Return(nil)

	got, err := svc.Update(ctx, "compilers-101", UpdateGroupInput{
		Description: strPtr("moved to thursdays"),
	})

	require.NoError(t, err)
	assert.Equal(t, "moved to thursdays", got.Description)
	assert.Equal(t, domain.JoinTypePublic, got.JoinType, "unset fields stay as they were")
	groups.AssertExpectations(t)
}

func TestGroupUpdate_NotFound(t *testing.T) {
	groups := new(mockGroupRepository)
	svc := newTestGroupService(groups)
	ctx := context.Background()

	groups.On("GetByName", ctx, "missing").Return(nil, apperrors.ErrNotFound)

	_, err := svc.Update(ctx, "missing", UpdateGroupInput{Description: strPtr("x")})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	groups.AssertNotCalled(t, "Update")
}

// --- Delete Tests ---

func TestGroupDelete_Success(t *testing.T) {
	groups := new(mockGroupRepository)
	svc := newTestGroupService(groups)
	ctx := context.Background()

	existing := &domain.Group{ID: uuid.New().String(), Name: "compilers-101"}
	groups.On("GetByName", ctx, "compilers-101").Return(existing, nil)
	groups.On("Delete", ctx, "compilers-101").Return(nil)

	err := svc.Delete(ctx, "compilers-101")

	require.NoError(t, err)
	groups.AssertExpectations(t)
}

func TestGroupDelete_NotFound(t *testing.T) {
	groups := new(mockGroupRepository)
	svc := newTestGroupService(groups)
	ctx := context.Background()

	groups.On("GetByName", ctx, "missing").Return(nil, apperrors.ErrNotFound)

	err := svc.Delete(ctx, "missing")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	groups.AssertNotCalled(t, "Delete")
}
