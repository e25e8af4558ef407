package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskManager/internal/logger"
	"taskManager/internal/models/user"
	rep "taskManager/internal/repository"

	"go.uber.org/zap"
)

type UserService struct {
	repo   UserRepository
	hasher PasswordHasher
}

func NewUserService(repo UserRepository, hasher PasswordHasher) *UserService {
	return &UserService{
		repo:   repo,
		hasher: hasher,
	}
}

func (s *UserService) Create(ctx context.Context, data user.Draft) (*user.User, error) {
	email := strings.TrimSpace(data.Email)
	if err := firstErr(
		validateEmail("email", email),
		validatePassword("password", data.Password),
	); err != nil {
		return nil, err
	}

	if err := s.checkEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}

	digest, err := s.hasher.Hash(data.Password)
	if err != nil {
		return nil, fmt.Errorf("хеширование пароля: %w", err)
	}

	u := &user.User{
		FirstName:      data.FirstName.ValueOr(""),
		LastName:       data.LastName.ValueOr(""),
		Email:          email,
		PasswordDigest: digest,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, mapWriteError(ResourceUser, err)
	}

	logger.Info("Service: Пользователь создан", zap.Int64("user_id", u.ID))
	return u, nil
}

// Update меняет только переданные поля. Проверка прав идёт раньше загрузки и валидации,
// поэтому чужой запрос получает FORBIDDEN независимо от содержимого.
func (s *UserService) Update(ctx context.Context, principal user.Principal, id int64, data user.Patch) (*user.User, error) {
	if !CanMutate(principal, id) {
		logger.Warn("Service: Попытка изменить чужого пользователя",
			zap.Int64("principal_id", principal.ID),
			zap.Int64("target_id", id))
		return nil, NewForbidden("изменение другого пользователя")
	}

	u, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	email, emailSet, err := validateSet("email", trimmed(data.Email), validateEmail)
	if err != nil {
		return nil, err
	}
	password, passwordSet, err := validateSet("password", data.Password, validatePassword)
	if err != nil {
		return nil, err
	}

	if emailSet && email != u.Email {
		if err := s.checkEmailFree(ctx, email, u.ID); err != nil {
			return nil, err
		}
	}

	if data.FirstName.IsSet() {
		u.FirstName = data.FirstName.ValueOr("")
	}
	if data.LastName.IsSet() {
		u.LastName = data.LastName.ValueOr("")
	}
	if emailSet {
		u.Email = email
	}
	if passwordSet {
		digest, err := s.hasher.Hash(password)
		if err != nil {
			return nil, fmt.Errorf("хеширование пароля: %w", err)
		}
		u.PasswordDigest = digest
	}

	if err := s.repo.Update(ctx, u); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewNotFound(ResourceUser, id)
		}
		return nil, mapWriteError(ResourceUser, err)
	}

	logger.Info("Service: Пользователь обновлён", zap.Int64("user_id", u.ID))
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, principal user.Principal, id int64) error {
	if !CanMutate(principal, id) {
		logger.Warn("Service: Попытка удалить чужого пользователя",
			zap.Int64("principal_id", principal.ID),
			zap.Int64("target_id", id))
		return NewForbidden("удаление другого пользователя")
	}
	return deleteByID(ctx, ResourceUser, id, s.repo.Delete)
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return s.load(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]*user.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение пользователей: %w", err)
	}
	return users, nil
}

// Authenticate проверяет пару email/пароль. Причина отказа наружу не раскрывается.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*user.User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Вход с неизвестным email")
			return nil, NewUnauthorized()
		}
		return nil, fmt.Errorf("поиск пользователя: %w", err)
	}

	if err := s.hasher.Compare(u.PasswordDigest, password); err != nil {
		logger.Info("Service: Неверный пароль", zap.Int64("user_id", u.ID))
		return nil, NewUnauthorized()
	}
	return u, nil
}

func (s *UserService) load(ctx context.Context, id int64) (*user.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Пользователь не найден", zap.Int64("target_id", id))
			return nil, NewNotFound(ResourceUser, id)
		}
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}
	return u, nil
}

// checkEmailFree - предварительная проверка; окончательно уникальность держит хранилище
func (s *UserService) checkEmailFree(ctx context.Context, email string, selfID int64) error {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("проверка email: %w", err)
	}
	if existing.ID != selfID {
		return NewConflict(ResourceUser, "email", email)
	}
	return nil
}
