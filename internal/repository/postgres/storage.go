package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskManager/internal/config"
	"taskManager/internal/logger"
	repo "taskManager/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// коды ошибок PostgreSQL
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// поля внешнего API по именам ограничений схемы
var constraintFields = map[string]string{
	"users_email_key":           "email",
	"task_statuses_name_key":    "name",
	"task_statuses_slug_key":    "slug",
	"labels_name_key":           "name",
	"tasks_task_status_id_fkey": "status",
	"tasks_assignee_id_fkey":    "assignee_id",
	"label_task_label_id_fkey":  "taskLabelIds",
}

type Storage struct {
	pool *pgxpool.Pool

	Users    *UserStorage
	Statuses *StatusStorage
	Labels   *LabelStorage
	Tasks    *TaskStorage
}

func New(ctx context.Context, cfg config.DatabaseConfig) (*Storage, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		logger.Error("Repository: Ошибка загрузки конфига", err)
		return nil, fmt.Errorf("загрузка конфига: %w", err)
	}

	if cfg.MaxConnections > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConnections)
	}
	if cfg.MinConnections > 0 {
		poolConfig.MinConns = int32(cfg.MinConnections)
	}
	if cfg.IdleTimeout > 0 {
		poolConfig.MaxConnIdleTime = cfg.IdleTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("Repository: Ошибка создания пула", err)
		return nil, fmt.Errorf("создание пула: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.Error("Repository: Неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	logger.Info("Repository: Успешное создание подключения к PostgreSQL")
	return &Storage{
		pool:     pool,
		Users:    &UserStorage{pool: pool},
		Statuses: &StatusStorage{pool: pool},
		Labels:   &LabelStorage{pool: pool},
		Tasks:    &TaskStorage{pool: pool},
	}, nil
}

func (s *Storage) Close() {
	s.pool.Close()
	logger.Info("Repository: Закрытие всех соединений PostgreSQL")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
}

func logSlow(op string, start time.Time, limit time.Duration) {
	if elapsed := time.Since(start); elapsed > limit {
		logger.Warn("Repository: Медленный запрос", zap.String("op", op), zap.Duration("ms", elapsed))
	}
}

// translateWriteError переводит нарушения ограничений в ошибки хранилища.
// values - значения, которые пытались записать, по имени поля.
func translateWriteError(err error, values map[string]string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	field, known := constraintFields[pgErr.ConstraintName]
	if !known {
		return err
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		return &repo.ConflictError{Field: field, Value: values[field]}
	case codeForeignKeyViolation:
		return &repo.ReferenceError{Field: field, Value: values[field]}
	}
	return err
}

// deleteRow удаляет строку по id. Ссылки из других таблиц дают ErrInUse.
func deleteRow(ctx context.Context, pool *pgxpool.Pool, op, query string, id int64) error {
	start := time.Now()
	defer logSlow(op, start, 100*time.Millisecond)

	tag, err := pool.Exec(ctx, query, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation {
			logger.Info("Repository: Запись используется", zap.String("op", op), zap.Int64("id", id))
			return repo.ErrInUse
		}
		logger.Error("Repository: Не удалось удалить запись", err, zap.String("op", op))
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// collectOne читает ровно одну строку, отсутствие строки - ErrNotFound
func collectOne[T any](rows pgx.Rows, rowErr error, op string) (*T, error) {
	if rowErr != nil {
		logger.Error("Repository: Ошибка запроса", rowErr, zap.String("op", op))
		return nil, fmt.Errorf("%s: %w", op, rowErr)
	}
	item, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Ошибка сканирования", err, zap.String("op", op))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

func collectAll[T any](rows pgx.Rows, rowErr error, op string) ([]*T, error) {
	if rowErr != nil {
		logger.Error("Repository: Ошибка запроса", rowErr, zap.String("op", op))
		return nil, fmt.Errorf("%s: %w", op, rowErr)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err, zap.String("op", op))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if items == nil {
		items = []*T{}
	}
	return items, nil
}
