package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskManager/internal/logger"
	"taskManager/internal/models/status"
	repo "taskManager/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const statusColumns = `id, name, slug, created_at`

type StatusStorage struct {
	pool *pgxpool.Pool
}

func (s *StatusStorage) Create(ctx context.Context, st *status.Status) error {
	start := time.Now()
	defer logSlow("создание статуса", start, 50*time.Millisecond)

	query := `INSERT INTO task_statuses (name, slug)
				VALUES ($1, $2)
				RETURNING id, created_at`

	if err := s.pool.QueryRow(ctx, query, st.Name, st.Slug).Scan(&st.ID, &st.CreatedAt); err != nil {
		err = translateWriteError(err, map[string]string{"name": st.Name, "slug": st.Slug})
		logger.Error("Repository: Не удалось добавить статус", err)
		return fmt.Errorf("добавление статуса: %w", err)
	}
	return nil
}

func (s *StatusStorage) Update(ctx context.Context, st *status.Status) error {
	start := time.Now()
	defer logSlow("обновление статуса", start, 100*time.Millisecond)

	query := `UPDATE task_statuses
			SET name = $1,
				slug = $2
			WHERE id = $3
			RETURNING created_at`

	if err := s.pool.QueryRow(ctx, query, st.Name, st.Slug, st.ID).Scan(&st.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repo.ErrNotFound
		}
		err = translateWriteError(err, map[string]string{"name": st.Name, "slug": st.Slug})
		logger.Error("Repository: Не удалось обновить статус", err)
		return fmt.Errorf("обновление статуса: %w", err)
	}
	return nil
}

func (s *StatusStorage) GetByID(ctx context.Context, id int64) (*status.Status, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+statusColumns+` FROM task_statuses WHERE id = $1`, id)
	return collectOne[status.Status](rows, err, "получение статуса")
}

func (s *StatusStorage) GetBySlug(ctx context.Context, slug string) (*status.Status, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+statusColumns+` FROM task_statuses WHERE slug = $1`, slug)
	return collectOne[status.Status](rows, err, "поиск статуса по slug")
}

func (s *StatusStorage) GetByName(ctx context.Context, name string) (*status.Status, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+statusColumns+` FROM task_statuses WHERE name = $1`, name)
	return collectOne[status.Status](rows, err, "поиск статуса по имени")
}

func (s *StatusStorage) List(ctx context.Context) ([]*status.Status, error) {
	start := time.Now()
	defer logSlow("получение статусов", start, 100*time.Millisecond)

	rows, err := s.pool.Query(ctx, `SELECT `+statusColumns+` FROM task_statuses ORDER BY id`)
	return collectAll[status.Status](rows, err, "получение статусов")
}

func (s *StatusStorage) Delete(ctx context.Context, id int64) error {
	return deleteRow(ctx, s.pool, "удаление статуса", `DELETE FROM task_statuses WHERE id = $1`, id)
}
