package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"taskManager/internal/logger"
	"taskManager/internal/models/task"
	repo "taskManager/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// имена колонок совпадают с db-тегами task.Task
const selectTasks = `SELECT
				t.id,
				t.name,
				t.sort_index,
				t.description,
				t.task_status_id,
				s.slug,
				t.assignee_id,
				COALESCE(
					(SELECT array_agg(lt.label_id ORDER BY lt.label_id)
						FROM label_task lt WHERE lt.task_id = t.id),
					'{}'::bigint[]) AS label_ids,
				t.created_at
				FROM tasks t
				JOIN task_statuses s ON s.id = t.task_status_id`

type TaskStorage struct {
	pool *pgxpool.Pool
}

func (s *TaskStorage) Create(ctx context.Context, t *task.Task) error {
	start := time.Now()
	defer logSlow("создание задачи", start, 100*time.Millisecond)

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		query := `INSERT INTO tasks
				(name, sort_index, description, task_status_id, assignee_id)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id, created_at`

		if err := tx.QueryRow(ctx, query,
			t.Name,
			t.Index,
			t.Description,
			t.StatusID,
			t.AssigneeID,
		).Scan(&t.ID, &t.CreatedAt); err != nil {
			return err
		}
		return s.writeLabels(ctx, tx, t)
	})
	if err != nil {
		err = translateWriteError(err, referenceValues(t))
		logger.Error("Repository: Не удалось добавить задачу", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление задачи: %w", err)
	}
	return nil
}

func (s *TaskStorage) Update(ctx context.Context, t *task.Task) error {
	start := time.Now()
	defer logSlow("обновление задачи", start, 100*time.Millisecond)

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		query := `UPDATE tasks
			SET name = $1,
				sort_index = $2,
				description = $3,
				task_status_id = $4,
				assignee_id = $5
			WHERE id = $6
			RETURNING created_at`

		if err := tx.QueryRow(ctx, query,
			t.Name,
			t.Index,
			t.Description,
			t.StatusID,
			t.AssigneeID,
			t.ID,
		).Scan(&t.CreatedAt); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM label_task WHERE task_id = $1`, t.ID); err != nil {
			return err
		}
		return s.writeLabels(ctx, tx, t)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repo.ErrNotFound
		}
		err = translateWriteError(err, referenceValues(t))
		logger.Error("Repository: Не удалось обновить задачу", err)
		return fmt.Errorf("обновление задачи: %w", err)
	}
	return nil
}

// writeLabels сохраняет связи с метками и подтягивает slug статуса
func (s *TaskStorage) writeLabels(ctx context.Context, tx pgx.Tx, t *task.Task) error {
	if t.LabelIDs == nil {
		t.LabelIDs = []int64{}
	}
	if len(t.LabelIDs) > 0 {
		query := `INSERT INTO label_task (task_id, label_id)
				SELECT $1, unnest($2::bigint[])`
		if _, err := tx.Exec(ctx, query, t.ID, t.LabelIDs); err != nil {
			return err
		}
	}
	return tx.QueryRow(ctx, `SELECT slug FROM task_statuses WHERE id = $1`, t.StatusID).Scan(&t.StatusSlug)
}

func (s *TaskStorage) GetByID(ctx context.Context, id int64) (*task.Task, error) {
	start := time.Now()
	defer logSlow("получение задачи", start, 100*time.Millisecond)

	rows, err := s.pool.Query(ctx, selectTasks+` WHERE t.id = $1`, id)
	return collectOne[task.Task](rows, err, "получение задачи")
}

// List строит условия только для заданных полей фильтра
func (s *TaskStorage) List(ctx context.Context, filter task.Filter) ([]*task.Task, error) {
	start := time.Now()
	defer logSlow("поиск задач", start, 200*time.Millisecond)

	var conditions []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.TitleCont != "" {
		add("strpos(t.name, $%d) > 0", filter.TitleCont)
	}
	if filter.AssigneeID != 0 {
		add("t.assignee_id = $%d", filter.AssigneeID)
	}
	if filter.StatusSlug != "" {
		add("s.slug = $%d", filter.StatusSlug)
	}
	if filter.LabelID != 0 {
		add("EXISTS (SELECT 1 FROM label_task f WHERE f.task_id = t.id AND f.label_id = $%d)", filter.LabelID)
	}

	query := selectTasks
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY t.id"

	rows, err := s.pool.Query(ctx, query, args...)
	return collectAll[task.Task](rows, err, "поиск задач")
}

func (s *TaskStorage) Delete(ctx context.Context, id int64) error {
	return deleteRow(ctx, s.pool, "удаление задачи", `DELETE FROM tasks WHERE id = $1`, id)
}

func referenceValues(t *task.Task) map[string]string {
	values := map[string]string{
		"status":       strconv.FormatInt(t.StatusID, 10),
		"taskLabelIds": joinIDs(t.LabelIDs),
	}
	if t.AssigneeID != nil {
		values["assignee_id"] = strconv.FormatInt(*t.AssigneeID, 10)
	}
	return values
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
