package handlers

import (
	"context"

	"taskManager/internal/models/label"
	"taskManager/internal/models/status"
	"taskManager/internal/models/task"
	"taskManager/internal/models/user"
)

type UserService interface {
	Create(ctx context.Context, data user.Draft) (*user.User, error)
	Update(ctx context.Context, principal user.Principal, id int64, data user.Patch) (*user.User, error)
	Delete(ctx context.Context, principal user.Principal, id int64) error
	GetByID(ctx context.Context, id int64) (*user.User, error)
	List(ctx context.Context) ([]*user.User, error)
	Authenticate(ctx context.Context, email, password string) (*user.User, error)
}

type StatusService interface {
	Create(ctx context.Context, data status.Draft) (*status.Status, error)
	Update(ctx context.Context, id int64, data status.Patch) (*status.Status, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*status.Status, error)
	List(ctx context.Context) ([]*status.Status, error)
}

type LabelService interface {
	Create(ctx context.Context, data label.Draft) (*label.Label, error)
	Update(ctx context.Context, id int64, data label.Patch) (*label.Label, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*label.Label, error)
	List(ctx context.Context) ([]*label.Label, error)
}

type TaskService interface {
	Create(ctx context.Context, data task.Draft) (*task.Task, error)
	Update(ctx context.Context, id int64, data task.Patch) (*task.Task, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*task.Task, error)
	List(ctx context.Context, filter task.Filter) ([]*task.Task, error)
}

type TokenIssuer interface {
	Issue(u *user.User) (string, error)
}

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
