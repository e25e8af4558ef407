package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskManager/internal/logger"
	"taskManager/internal/models/user"
	repo "taskManager/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, first_name, last_name, email, password_digest, created_at, updated_at`

type UserStorage struct {
	pool *pgxpool.Pool
}

func (s *UserStorage) Create(ctx context.Context, u *user.User) error {
	start := time.Now()
	defer logSlow("создание пользователя", start, 50*time.Millisecond)

	query := `INSERT INTO users (first_name, last_name, email, password_digest)
				VALUES ($1, $2, $3, $4)
				RETURNING id, created_at, updated_at`

	err := s.pool.QueryRow(ctx, query, u.FirstName, u.LastName, u.Email, u.PasswordDigest).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		err = translateWriteError(err, map[string]string{"email": u.Email})
		logger.Error("Repository: Не удалось добавить пользователя", err)
		return fmt.Errorf("добавление пользователя: %w", err)
	}
	return nil
}

func (s *UserStorage) Update(ctx context.Context, u *user.User) error {
	start := time.Now()
	defer logSlow("обновление пользователя", start, 100*time.Millisecond)

	query := `UPDATE users
			SET first_name = $1,
				last_name = $2,
				email = $3,
				password_digest = $4,
				updated_at = NOW()
			WHERE id = $5
			RETURNING created_at, updated_at`

	err := s.pool.QueryRow(ctx, query, u.FirstName, u.LastName, u.Email, u.PasswordDigest, u.ID).
		Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repo.ErrNotFound
		}
		err = translateWriteError(err, map[string]string{"email": u.Email})
		logger.Error("Repository: Не удалось обновить пользователя", err)
		return fmt.Errorf("обновление пользователя: %w", err)
	}
	return nil
}

func (s *UserStorage) GetByID(ctx context.Context, id int64) (*user.User, error) {
	start := time.Now()
	defer logSlow("получение пользователя", start, 100*time.Millisecond)

	rows, err := s.pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return collectOne[user.User](rows, err, "получение пользователя")
}

func (s *UserStorage) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	start := time.Now()
	defer logSlow("поиск пользователя по email", start, 100*time.Millisecond)

	rows, err := s.pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return collectOne[user.User](rows, err, "поиск пользователя по email")
}

func (s *UserStorage) List(ctx context.Context) ([]*user.User, error) {
	start := time.Now()
	defer logSlow("получение пользователей", start, 200*time.Millisecond)

	rows, err := s.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	return collectAll[user.User](rows, err, "получение пользователей")
}

func (s *UserStorage) Delete(ctx context.Context, id int64) error {
	return deleteRow(ctx, s.pool, "удаление пользователя", `DELETE FROM users WHERE id = $1`, id)
}
