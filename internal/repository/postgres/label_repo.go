package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskManager/internal/logger"
	"taskManager/internal/models/label"
	repo "taskManager/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const labelColumns = `id, name, created_at`

type LabelStorage struct {
	pool *pgxpool.Pool
}

func (s *LabelStorage) Create(ctx context.Context, l *label.Label) error {
	start := time.Now()
	defer logSlow("создание метки", start, 50*time.Millisecond)

	query := `INSERT INTO labels (name) VALUES ($1) RETURNING id, created_at`

	if err := s.pool.QueryRow(ctx, query, l.Name).Scan(&l.ID, &l.CreatedAt); err != nil {
		err = translateWriteError(err, map[string]string{"name": l.Name})
		logger.Error("Repository: Не удалось добавить метку", err)
		return fmt.Errorf("добавление метки: %w", err)
	}
	return nil
}

func (s *LabelStorage) Update(ctx context.Context, l *label.Label) error {
	start := time.Now()
	defer logSlow("обновление метки", start, 100*time.Millisecond)

	query := `UPDATE labels SET name = $1 WHERE id = $2 RETURNING created_at`

	if err := s.pool.QueryRow(ctx, query, l.Name, l.ID).Scan(&l.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repo.ErrNotFound
		}
		err = translateWriteError(err, map[string]string{"name": l.Name})
		logger.Error("Repository: Не удалось обновить метку", err)
		return fmt.Errorf("обновление метки: %w", err)
	}
	return nil
}

func (s *LabelStorage) GetByID(ctx context.Context, id int64) (*label.Label, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+labelColumns+` FROM labels WHERE id = $1`, id)
	return collectOne[label.Label](rows, err, "получение метки")
}

func (s *LabelStorage) GetByName(ctx context.Context, name string) (*label.Label, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+labelColumns+` FROM labels WHERE name = $1`, name)
	return collectOne[label.Label](rows, err, "поиск метки по имени")
}

func (s *LabelStorage) GetByIDs(ctx context.Context, ids []int64) ([]*label.Label, error) {
	start := time.Now()
	defer logSlow("получение меток по id", start, 100*time.Millisecond)

	rows, err := s.pool.Query(ctx,
		`SELECT `+labelColumns+` FROM labels WHERE id = ANY($1) ORDER BY id`, ids)
	return collectAll[label.Label](rows, err, "получение меток по id")
}

func (s *LabelStorage) List(ctx context.Context) ([]*label.Label, error) {
	start := time.Now()
	defer logSlow("получение меток", start, 100*time.Millisecond)

	rows, err := s.pool.Query(ctx, `SELECT `+labelColumns+` FROM labels ORDER BY id`)
	return collectAll[label.Label](rows, err, "получение меток")
}

func (s *LabelStorage) Delete(ctx context.Context, id int64) error {
	return deleteRow(ctx, s.pool, "удаление метки", `DELETE FROM labels WHERE id = $1`, id)
}
