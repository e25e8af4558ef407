package inmemory

import (
	"context"
	"strconv"

	"taskManager/internal/models/task"
	repo "taskManager/internal/repository"
)

type TaskStorage struct {
	*state
}

func (s *TaskStorage) Create(ctx context.Context, t *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if err := s.checkReferences(t); err != nil {
		return err
	}

	s.lastTaskID++
	t.ID = s.lastTaskID
	t.CreatedAt = s.now()
	t.StatusSlug = s.statuses[t.StatusID].Slug

	s.tasks[t.ID] = t.Clone()
	return nil
}

func (s *TaskStorage) Update(ctx context.Context, t *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.tasks[t.ID]
	if !ok {
		return repo.ErrNotFound
	}
	if err := s.checkReferences(t); err != nil {
		return err
	}

	t.CreatedAt = existing.CreatedAt
	t.StatusSlug = s.statuses[t.StatusID].Slug

	s.tasks[t.ID] = t.Clone()
	return nil
}

func (s *TaskStorage) GetByID(ctx context.Context, id int64) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return t.Clone(), nil
}

// List отбирает задачи по фильтру в порядке id
func (s *TaskStorage) List(ctx context.Context, filter task.Filter) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*task.Task{}
	for _, t := range sortedValues(s.tasks) {
		if filter.Matches(t) {
			res = append(res, t.Clone())
		}
	}
	return res, nil
}

func (s *TaskStorage) Delete(ctx context.Context, id int64) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

// checkReferences - аналог внешних ключей: статус обязателен,
// исполнитель и метки, если заданы, должны существовать
func (s *TaskStorage) checkReferences(t *task.Task) error {
	if _, ok := s.statuses[t.StatusID]; !ok {
		return &repo.ReferenceError{Field: "status", Value: strconv.FormatInt(t.StatusID, 10)}
	}
	if t.AssigneeID != nil {
		if _, ok := s.users[*t.AssigneeID]; !ok {
			return &repo.ReferenceError{Field: "assignee_id", Value: strconv.FormatInt(*t.AssigneeID, 10)}
		}
	}
	for _, id := range t.LabelIDs {
		if _, ok := s.labels[id]; !ok {
			return &repo.ReferenceError{Field: "taskLabelIds", Value: strconv.FormatInt(id, 10)}
		}
	}
	return nil
}
