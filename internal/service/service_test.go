package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"taskManager/internal/models/field"
	"taskManager/internal/models/user"
	"taskManager/internal/repository"
	"taskManager/internal/repository/inmemory"
	"taskManager/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository - мок репозитория пользователей
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*user.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ service.UserRepository = (*MockUserRepository)(nil)

// MockHasher - мок хеширования паролей
type MockHasher struct {
	mock.Mock
}

func (m *MockHasher) Hash(plain string) (string, error) {
	args := m.Called(plain)
	return args.String(0), args.Error(1)
}

func (m *MockHasher) Compare(digest, plain string) error {
	args := m.Called(digest, plain)
	return args.Error(0)
}

// plainHasher - предсказуемый хеш для тестов поверх хранилища в памяти
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (plainHasher) Compare(digest, plain string) error {
	if digest != "hashed:"+plain {
		return errors.New("mismatch")
	}
	return nil
}

type fixture struct {
	storage  *inmemory.Storage
	users    *service.UserService
	statuses *service.StatusService
	labels   *service.LabelService
	tasks    *service.TaskService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	storage := inmemory.New()
	return &fixture{
		storage:  storage,
		users:    service.NewUserService(storage.Users, plainHasher{}),
		statuses: service.NewStatusService(storage.Statuses),
		labels:   service.NewLabelService(storage.Labels),
		tasks: service.NewTaskService(storage.Tasks,
			service.NewResolver(storage.Statuses, storage.Users, storage.Labels)),
	}
}

func requireCode(t *testing.T, err error, code string) *service.BusinessError {
	t.Helper()
	require.Error(t, err)
	var busErr *service.BusinessError
	require.ErrorAs(t, err, &busErr)
	require.Equal(t, code, busErr.Code, busErr.Message)
	return busErr
}

// TestUserService_Update_GateFirst тестирует, что чужой запрос отклоняется до чтения хранилища
func TestUserService_Update_GateFirst(t *testing.T) {
	repo := new(MockUserRepository)
	hasher := new(MockHasher)
	svc := service.NewUserService(repo, hasher)

	principal := user.Principal{ID: 1}

	_, err := svc.Update(context.Background(), principal, 2, user.Patch{})
	requireCode(t, err, service.CodeForbidden)

	err = svc.Delete(context.Background(), principal, 2)
	requireCode(t, err, service.CodeForbidden)

	_, err = svc.Update(context.Background(), user.Principal{}, 0, user.Patch{})
	requireCode(t, err, service.CodeForbidden)

	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	hasher.AssertExpectations(t)
}

// TestUserService_Create_HashesPassword тестирует, что в хранилище уходит только хеш
func TestUserService_Create_HashesPassword(t *testing.T) {
	repo := new(MockUserRepository)
	hasher := new(MockHasher)
	svc := service.NewUserService(repo, hasher)

	repo.On("GetByEmail", mock.Anything, "jane@example.com").Return(nil, repository.ErrNotFound)
	hasher.On("Hash", "secret").Return("digest", nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *user.User) bool {
		return u.PasswordDigest == "digest" && u.Email == "jane@example.com"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*user.User).ID = 1
	}).Return(nil)

	u, err := svc.Create(context.Background(), user.Draft{Email: "  jane@example.com ", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)

	repo.AssertExpectations(t)
	hasher.AssertExpectations(t)
}

// TestUserService_Create_StoreRace тестирует конфликт, пойманный только хранилищем
func TestUserService_Create_StoreRace(t *testing.T) {
	repo := new(MockUserRepository)
	hasher := new(MockHasher)
	svc := service.NewUserService(repo, hasher)

	repo.On("GetByEmail", mock.Anything, "jane@example.com").Return(nil, repository.ErrNotFound)
	hasher.On("Hash", "secret").Return("digest", nil)
	repo.On("Create", mock.Anything, mock.Anything).
		Return(&repository.ConflictError{Field: "email", Value: "jane@example.com"})

	_, err := svc.Create(context.Background(), user.Draft{Email: "jane@example.com", Password: "secret"})
	busErr := requireCode(t, err, service.CodeConflict)
	assert.Equal(t, "email", busErr.Details["field"])
}

// TestUserService_StorageFailure тестирует проброс внутренних ошибок хранилища
func TestUserService_StorageFailure(t *testing.T) {
	repo := new(MockUserRepository)
	svc := service.NewUserService(repo, new(MockHasher))
	storageErr := errors.New("connection reset")

	repo.On("GetByID", mock.Anything, int64(5)).Return(nil, storageErr)
	repo.On("Delete", mock.Anything, int64(5)).Return(storageErr)

	_, err := svc.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, storageErr)
	assert.False(t, service.HasCode(err, service.CodeNotFound))

	err = svc.Delete(context.Background(), user.Principal{ID: 5}, 5)
	assert.ErrorIs(t, err, storageErr)
}

// TestUserService_Flow тестирует создание, обновление и вход поверх хранилища в памяти
func TestUserService_Flow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	jane, err := f.users.Create(ctx, user.Draft{Email: "jane@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "hashed:secret", jane.PasswordDigest)

	_, err = f.users.Create(ctx, user.Draft{Email: "jane@example.com", Password: "other"})
	requireCode(t, err, service.CodeConflict)

	tests := []struct {
		name  string
		draft user.Draft
		field string
	}{
		{name: "error - empty email", draft: user.Draft{Password: "secret"}, field: "email"},
		{name: "error - bad email", draft: user.Draft{Email: "jane", Password: "secret"}, field: "email"},
		{name: "error - named email", draft: user.Draft{Email: "Jane <j@example.com>", Password: "secret"}, field: "email"},
		{name: "error - short password", draft: user.Draft{Email: "a@example.com", Password: "ab"}, field: "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.users.Create(ctx, tt.draft)
			busErr := requireCode(t, err, service.CodeValidation)
			assert.Equal(t, tt.field, busErr.Details["field"])
		})
	}

	self := user.Principal{ID: jane.ID}

	t.Run("success - empty patch changes nothing", func(t *testing.T) {
		got, err := f.users.Update(ctx, self, jane.ID, user.Patch{})
		require.NoError(t, err)
		assert.Equal(t, jane.Email, got.Email)
		assert.Equal(t, jane.PasswordDigest, got.PasswordDigest)
	})

	t.Run("success - password rehashed", func(t *testing.T) {
		_, err := f.users.Update(ctx, self, jane.ID, user.Patch{Password: field.Some("newpass")})
		require.NoError(t, err)

		_, err = f.users.Authenticate(ctx, "jane@example.com", "newpass")
		require.NoError(t, err)
		_, err = f.users.Authenticate(ctx, "jane@example.com", "secret")
		requireCode(t, err, service.CodeUnauthorized)
	})

	t.Run("success - null first name clears", func(t *testing.T) {
		_, err := f.users.Update(ctx, self, jane.ID, user.Patch{FirstName: field.Some("Jane")})
		require.NoError(t, err)
		got, err := f.users.Update(ctx, self, jane.ID, user.Patch{FirstName: field.Null[string]()})
		require.NoError(t, err)
		assert.Empty(t, got.FirstName)
	})

	t.Run("error - null email", func(t *testing.T) {
		_, err := f.users.Update(ctx, self, jane.ID, user.Patch{Email: field.Null[string]()})
		requireCode(t, err, service.CodeValidation)
	})

	t.Run("error - self not found", func(t *testing.T) {
		_, err := f.users.Update(ctx, user.Principal{ID: 77}, 77, user.Patch{})
		requireCode(t, err, service.CodeNotFound)
	})

	t.Run("error - unknown email", func(t *testing.T) {
		_, err := f.users.Authenticate(ctx, "nobody@example.com", "secret")
		requireCode(t, err, service.CodeUnauthorized)
	})

	t.Run("success - delete is idempotent", func(t *testing.T) {
		require.NoError(t, f.users.Delete(ctx, self, jane.ID))
		require.NoError(t, f.users.Delete(ctx, self, jane.ID))
	})
}

// TestCanMutate тестирует правило "только сам себя"
func TestCanMutate(t *testing.T) {
	assert.True(t, service.CanMutate(user.Principal{ID: 3}, 3))
	assert.False(t, service.CanMutate(user.Principal{ID: 3}, 4))
	assert.False(t, service.CanMutate(user.Principal{}, 0))
}

// TestBusinessError тестирует текст и разворачивание ошибки
func TestBusinessError(t *testing.T) {
	inner := errors.New("inner")
	busErr := service.NewNotFound(service.ResourceTask, 5)
	busErr.Err = inner

	assert.ErrorIs(t, busErr, inner)
	assert.True(t, strings.HasPrefix(busErr.Error(), "[NOT_FOUND]"))
	assert.Equal(t, int64(5), busErr.Details["id"])
	assert.True(t, service.HasCode(busErr, service.CodeNotFound))
	assert.False(t, service.HasCode(inner, service.CodeNotFound))
}
