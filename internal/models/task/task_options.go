package task

import "slices"

// TaskOption - одно изменение задачи, уже прошедшее проверку
type TaskOption func(*Task)

func WithTitle(title string) TaskOption {
	return func(task *Task) {
		task.Name = title
	}
}

func WithIndex(index int) TaskOption {
	return func(task *Task) {
		task.Index = index
	}
}

func WithDescription(description string) TaskOption {
	return func(task *Task) {
		task.Description = description
	}
}

func WithStatus(id int64, slug string) TaskOption {
	return func(task *Task) {
		task.StatusID = id
		task.StatusSlug = slug
	}
}

// WithAssignee с nil снимает исполнителя
func WithAssignee(id *int64) TaskOption {
	return func(task *Task) {
		if id == nil {
			task.AssigneeID = nil
			return
		}
		v := *id
		task.AssigneeID = &v
	}
}

func WithLabels(ids []int64) TaskOption {
	return func(task *Task) {
		task.LabelIDs = slices.Clone(ids)
		if task.LabelIDs == nil {
			task.LabelIDs = []int64{}
		}
	}
}

func (t *Task) Apply(options ...TaskOption) {
	for _, opt := range options {
		if opt != nil {
			opt(t)
		}
	}
}
