package dto

import (
	"time"

	"taskManager/internal/models/field"
	"taskManager/internal/models/label"
	"taskManager/internal/models/status"
	"taskManager/internal/models/task"
	"taskManager/internal/models/user"
)

// DateLayout - формат дат во всех ответах
const DateLayout = "2006-01-02"

func formatDate(t time.Time) string {
	return t.Format(DateLayout)
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// пользователи

type CreateUserRequest struct {
	FirstName field.Option[string] `json:"firstName"`
	LastName  field.Option[string] `json:"lastName"`
	Email     string               `json:"email"`
	Password  string               `json:"password"`
}

func (r CreateUserRequest) ToDraft() user.Draft {
	return user.Draft{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Password:  r.Password,
	}
}

type UpdateUserRequest struct {
	FirstName field.Option[string] `json:"firstName"`
	LastName  field.Option[string] `json:"lastName"`
	Email     field.Option[string] `json:"email"`
	Password  field.Option[string] `json:"password"`
}

func (r UpdateUserRequest) ToPatch() user.Patch {
	return user.Patch{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Password:  r.Password,
	}
}

// UserResponse не содержит пароля и его хеша
type UserResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func FromUser(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		CreatedAt: formatDate(u.CreatedAt),
		UpdatedAt: formatDate(u.UpdatedAt),
	}
}

func FromUserList(users []*user.User) []UserResponse {
	return mapList(users, FromUser)
}

// статусы

type CreateStatusRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (r CreateStatusRequest) ToDraft() status.Draft {
	return status.Draft{Name: r.Name, Slug: r.Slug}
}

type UpdateStatusRequest struct {
	Name field.Option[string] `json:"name"`
	Slug field.Option[string] `json:"slug"`
}

func (r UpdateStatusRequest) ToPatch() status.Patch {
	return status.Patch{Name: r.Name, Slug: r.Slug}
}

type StatusResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	CreatedAt string `json:"createdAt"`
}

func FromStatus(s *status.Status) StatusResponse {
	return StatusResponse{
		ID:        s.ID,
		Name:      s.Name,
		Slug:      s.Slug,
		CreatedAt: formatDate(s.CreatedAt),
	}
}

func FromStatusList(statuses []*status.Status) []StatusResponse {
	return mapList(statuses, FromStatus)
}

// метки

type CreateLabelRequest struct {
	Name string `json:"name"`
}

func (r CreateLabelRequest) ToDraft() label.Draft {
	return label.Draft{Name: r.Name}
}

type UpdateLabelRequest struct {
	Name field.Option[string] `json:"name"`
}

func (r UpdateLabelRequest) ToPatch() label.Patch {
	return label.Patch{Name: r.Name}
}

type LabelResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

func FromLabel(l *label.Label) LabelResponse {
	return LabelResponse{
		ID:        l.ID,
		Name:      l.Name,
		CreatedAt: formatDate(l.CreatedAt),
	}
}

func FromLabelList(labels []*label.Label) []LabelResponse {
	return mapList(labels, FromLabel)
}

// задачи

type CreateTaskRequest struct {
	Title      string                `json:"title"`
	Index      field.Option[int]     `json:"index"`
	Content    field.Option[string]  `json:"content"`
	Status     string                `json:"status"`
	AssigneeID field.Option[int64]   `json:"assignee_id"`
	LabelIDs   field.Option[[]int64] `json:"taskLabelIds"`
}

func (r CreateTaskRequest) ToDraft() task.Draft {
	return task.Draft{
		Title:      r.Title,
		Index:      r.Index,
		Content:    r.Content,
		Status:     r.Status,
		AssigneeID: r.AssigneeID,
		LabelIDs:   r.LabelIDs,
	}
}

type UpdateTaskRequest struct {
	Title      field.Option[string]  `json:"title"`
	Index      field.Option[int]     `json:"index"`
	Content    field.Option[string]  `json:"content"`
	Status     field.Option[string]  `json:"status"`
	AssigneeID field.Option[int64]   `json:"assignee_id"`
	LabelIDs   field.Option[[]int64] `json:"taskLabelIds"`
}

func (r UpdateTaskRequest) ToPatch() task.Patch {
	return task.Patch{
		Title:      r.Title,
		Index:      r.Index,
		Content:    r.Content,
		Status:     r.Status,
		AssigneeID: r.AssigneeID,
		LabelIDs:   r.LabelIDs,
	}
}

type TaskResponse struct {
	ID           int64   `json:"id"`
	Index        int     `json:"index"`
	Title        string  `json:"title"`
	Content      string  `json:"content"`
	Status       string  `json:"status"`
	AssigneeID   *int64  `json:"assignee_id"`
	TaskLabelIDs []int64 `json:"taskLabelIds"`
	CreatedAt    string  `json:"createdAt"`
}

func FromTask(t *task.Task) TaskResponse {
	labelIDs := t.LabelIDs
	if labelIDs == nil {
		labelIDs = []int64{}
	}
	return TaskResponse{
		ID:           t.ID,
		Index:        t.Index,
		Title:        t.Name,
		Content:      t.Description,
		Status:       t.StatusSlug,
		AssigneeID:   t.AssigneeID,
		TaskLabelIDs: labelIDs,
		CreatedAt:    formatDate(t.CreatedAt),
	}
}

func FromTaskList(tasks []*task.Task) []TaskResponse {
	return mapList(tasks, FromTask)
}

func mapList[T, R any](items []*T, convert func(*T) R) []R {
	result := make([]R, len(items))
	for i, item := range items {
		result[i] = convert(item)
	}
	return result
}
