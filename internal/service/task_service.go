package service

import (
	"context"
	"errors"
	"fmt"

	"taskManager/internal/logger"
	"taskManager/internal/models/field"
	"taskManager/internal/models/task"
	rep "taskManager/internal/repository"

	"go.uber.org/zap"
)

// поля ссылок в терминах внешнего API
const (
	fieldStatus   = "status"
	fieldAssignee = "assignee_id"
	fieldLabels   = "taskLabelIds"
)

type TaskService struct {
	repo     TaskRepository
	resolver *Resolver
}

func NewTaskService(repo TaskRepository, resolver *Resolver) *TaskService {
	return &TaskService{
		repo:     repo,
		resolver: resolver,
	}
}

func (s *TaskService) Create(ctx context.Context, data task.Draft) (*task.Task, error) {
	if err := firstErr(
		validateRequired("title", data.Title),
		validateRequired(fieldStatus, data.Status),
	); err != nil {
		return nil, err
	}

	options, err := s.resolveReferences(ctx, field.Some(data.Status), data.AssigneeID, data.LabelIDs)
	if err != nil {
		return nil, err
	}

	t := &task.Task{LabelIDs: []int64{}}
	t.Apply(
		task.WithTitle(data.Title),
		task.WithIndex(data.Index.ValueOr(0)),
		task.WithDescription(data.Content.ValueOr("")),
	)
	t.Apply(options...)

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, mapWriteError(ResourceTask, err)
	}

	logger.Info("Service: Задача создана",
		zap.Int64("task_id", t.ID),
		zap.String("status", t.StatusSlug))
	return t, nil
}

// Update применяет только переданные поля. Любая ненайденная ссылка отменяет всю операцию,
// задача при этом остаётся прежней.
func (s *TaskService) Update(ctx context.Context, id int64, data task.Patch) (*task.Task, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	title, titleSet, err := validateSet("title", data.Title, validateRequired)
	if err != nil {
		return nil, err
	}
	if data.Status.IsSet() {
		if _, _, err := validateSet(fieldStatus, data.Status, validateRequired); err != nil {
			return nil, err
		}
	}

	options, err := s.resolveReferences(ctx, data.Status, data.AssigneeID, data.LabelIDs)
	if err != nil {
		return nil, err
	}

	if titleSet {
		options = append(options, task.WithTitle(title))
	}
	if data.Index.IsSet() {
		options = append(options, task.WithIndex(data.Index.ValueOr(0)))
	}
	if data.Content.IsSet() {
		options = append(options, task.WithDescription(data.Content.ValueOr("")))
	}

	t.Apply(options...)

	if err := s.repo.Update(ctx, t); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewNotFound(ResourceTask, id)
		}
		return nil, mapWriteError(ResourceTask, err)
	}

	logger.Info("Service: Задача обновлена", zap.Int64("task_id", t.ID))
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, ResourceTask, id, s.repo.Delete)
}

func (s *TaskService) GetByID(ctx context.Context, id int64) (*task.Task, error) {
	return s.load(ctx, id)
}

// List - поиск задач. Все условия фильтра объединяются через И,
// пустая строка и 0 отключают соответствующее условие.
func (s *TaskService) List(ctx context.Context, filter task.Filter) ([]*task.Task, error) {
	tasks, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}

	logger.Info("Service: Задачи получены",
		zap.Int("count", len(tasks)),
		zap.Bool("filtered", !filter.IsEmpty()))
	return tasks, nil
}

func (s *TaskService) load(ctx context.Context, id int64) (*task.Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.Int64("target_id", id))
			return nil, NewNotFound(ResourceTask, id)
		}
		return nil, fmt.Errorf("получение задачи: %w", err)
	}
	return t, nil
}

// resolveReferences разрешает переданные ссылки и собирает опции для задачи.
// Непереданные поля опций не дают, null снимает исполнителя и метки.
func (s *TaskService) resolveReferences(
	ctx context.Context,
	slug field.Option[string],
	assignee field.Option[int64],
	labels field.Option[[]int64],
) ([]task.TaskOption, error) {
	var options []task.TaskOption

	statusRef, err := s.resolver.ResolveStatus(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := statusRef.Err(fieldStatus); err != nil {
		return nil, err
	}
	if statusRef.State == RefResolved {
		options = append(options, task.WithStatus(statusRef.Value.ID, statusRef.Value.Slug))
	}

	userRef, err := s.resolver.ResolveUser(ctx, assignee)
	if err != nil {
		return nil, err
	}
	if err := userRef.Err(fieldAssignee); err != nil {
		return nil, err
	}
	switch userRef.State {
	case RefResolved:
		id := userRef.Value.ID
		options = append(options, task.WithAssignee(&id))
	case RefCleared:
		options = append(options, task.WithAssignee(nil))
	}

	labelRef, err := s.resolver.ResolveLabels(ctx, labels)
	if err != nil {
		return nil, err
	}
	if err := labelRef.Err(fieldLabels); err != nil {
		return nil, err
	}
	switch labelRef.State {
	case RefResolved:
		options = append(options, task.WithLabels(labelIDs(labelRef.Value)))
	case RefCleared:
		options = append(options, task.WithLabels(nil))
	}

	return options, nil
}
