package service

import (
	"context"

	"taskManager/internal/models/label"
	"taskManager/internal/models/status"
	"taskManager/internal/models/task"
	"taskManager/internal/models/user"
)

type Resource string

const (
	ResourceUser   Resource = "user"
	ResourceStatus Resource = "task_status"
	ResourceLabel  Resource = "label"
	ResourceTask   Resource = "task"
)

// Хранилища возвращают копии: изменение полученной записи не меняет сохранённую.
// Отсутствие записи - repository.ErrNotFound, нарушение уникальности - *repository.ConflictError.

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	Update(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id int64) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	List(ctx context.Context) ([]*user.User, error)
	Delete(ctx context.Context, id int64) error
}

type StatusRepository interface {
	Create(ctx context.Context, s *status.Status) error
	Update(ctx context.Context, s *status.Status) error
	GetByID(ctx context.Context, id int64) (*status.Status, error)
	GetBySlug(ctx context.Context, slug string) (*status.Status, error)
	GetByName(ctx context.Context, name string) (*status.Status, error)
	List(ctx context.Context) ([]*status.Status, error)
	Delete(ctx context.Context, id int64) error
}

type LabelRepository interface {
	Create(ctx context.Context, l *label.Label) error
	Update(ctx context.Context, l *label.Label) error
	GetByID(ctx context.Context, id int64) (*label.Label, error)
	GetByName(ctx context.Context, name string) (*label.Label, error)
	// GetByIDs возвращает найденные метки, отсутствующие id пропускаются
	GetByIDs(ctx context.Context, ids []int64) ([]*label.Label, error)
	List(ctx context.Context) ([]*label.Label, error)
	Delete(ctx context.Context, id int64) error
}

type TaskRepository interface {
	Create(ctx context.Context, t *task.Task) error
	Update(ctx context.Context, t *task.Task) error
	GetByID(ctx context.Context, id int64) (*task.Task, error)
	List(ctx context.Context, filter task.Filter) ([]*task.Task, error)
	Delete(ctx context.Context, id int64) error
}

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// PasswordHasher - получение и проверка хеша пароля
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(digest, plain string) error
}
