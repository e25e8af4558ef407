package inmemory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"taskManager/internal/logger"
	"taskManager/internal/models/label"
	"taskManager/internal/models/status"
	"taskManager/internal/models/task"
	"taskManager/internal/models/user"
)

// state - общие таблицы всех хранилищ. Один мьютекс на всё, чтобы проверки
// уникальности и ссылок выполнялись атомарно вместе с записью.
type state struct {
	mtx *sync.RWMutex
	now func() time.Time

	users    map[int64]*user.User
	statuses map[int64]*status.Status
	labels   map[int64]*label.Label
	tasks    map[int64]*task.Task

	lastUserID   int64
	lastStatusID int64
	lastLabelID  int64
	lastTaskID   int64
}

type Storage struct {
	Users    *UserStorage
	Statuses *StatusStorage
	Labels   *LabelStorage
	Tasks    *TaskStorage
}

func New() *Storage {
	st := &state{
		mtx:      &sync.RWMutex{},
		now:      time.Now,
		users:    make(map[int64]*user.User),
		statuses: make(map[int64]*status.Status),
		labels:   make(map[int64]*label.Label),
		tasks:    make(map[int64]*task.Task),
	}
	return &Storage{
		Users:    &UserStorage{st},
		Statuses: &StatusStorage{st},
		Labels:   &LabelStorage{st},
		Tasks:    &TaskStorage{st},
	}
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	logger.Info("Repository: Соединение стабильно")
	return nil
}

func (s *Storage) Close() {
	logger.Info("Repository: Хранилище в памяти закрыто")
}

// sortedValues возвращает записи в порядке первичного ключа
func sortedValues[T any](m map[int64]*T) []*T {
	ids := slices.Sorted(maps.Keys(m))
	res := make([]*T, 0, len(ids))
	for _, id := range ids {
		res = append(res, m[id])
	}
	return res
}
