package task

import (
	"slices"
	"strings"
	"time"

	"taskManager/internal/models/field"
)

type Task struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"title" db:"name"`
	Index       int       `json:"index" db:"sort_index"`
	Description string    `json:"content" db:"description"`
	StatusID    int64     `json:"-" db:"task_status_id"`
	StatusSlug  string    `json:"status" db:"slug"`
	AssigneeID  *int64    `json:"assignee_id,omitempty" db:"assignee_id"`
	LabelIDs    []int64   `json:"taskLabelIds" db:"label_ids"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// Clone возвращает копию без общих срезов и указателей
func (t *Task) Clone() *Task {
	cp := *t
	if t.AssigneeID != nil {
		id := *t.AssigneeID
		cp.AssigneeID = &id
	}
	cp.LabelIDs = slices.Clone(t.LabelIDs)
	if cp.LabelIDs == nil {
		cp.LabelIDs = []int64{}
	}
	return &cp
}

func (t *Task) HasLabel(id int64) bool {
	return slices.Contains(t.LabelIDs, id)
}

type Draft struct {
	Title      string
	Index      field.Option[int]
	Content    field.Option[string]
	Status     string
	AssigneeID field.Option[int64]
	LabelIDs   field.Option[[]int64]
}

type Patch struct {
	Title      field.Option[string]
	Index      field.Option[int]
	Content    field.Option[string]
	Status     field.Option[string]
	AssigneeID field.Option[int64]
	LabelIDs   field.Option[[]int64]
}

// Filter - параметры поиска задач. Пустая строка и 0 означают "без фильтра".
type Filter struct {
	TitleCont  string
	AssigneeID int64
	StatusSlug string
	LabelID    int64
}

// Matches проверяет задачу на все условия фильтра сразу (логическое И).
// Поиск по названию чувствителен к регистру.
func (f Filter) Matches(t *Task) bool {
	if f.TitleCont != "" && !strings.Contains(t.Name, f.TitleCont) {
		return false
	}
	if f.AssigneeID != 0 && (t.AssigneeID == nil || *t.AssigneeID != f.AssigneeID) {
		return false
	}
	if f.StatusSlug != "" && t.StatusSlug != f.StatusSlug {
		return false
	}
	if f.LabelID != 0 && !t.HasLabel(f.LabelID) {
		return false
	}
	return true
}

func (f Filter) IsEmpty() bool {
	return f == Filter{}
}
