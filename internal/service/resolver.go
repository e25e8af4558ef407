package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"taskManager/internal/logger"
	"taskManager/internal/models/field"
	"taskManager/internal/models/label"
	"taskManager/internal/models/status"
	"taskManager/internal/models/user"
	rep "taskManager/internal/repository"

	"go.uber.org/zap"
)

type RefState int

const (
	// RefOmitted - поле не передано, текущее значение остаётся
	RefOmitted RefState = iota
	// RefCleared - поле передано как null
	RefCleared
	// RefResolved - ссылка найдена
	RefResolved
	// RefNotFound - ссылка передана, но такой записи нет
	RefNotFound
)

type Ref[T any] struct {
	State RefState
	Value T
	Input string // переданное значение, для текста ошибки
}

// Err возвращает REFERENCE_NOT_FOUND для ненайденной ссылки и nil в остальных случаях
func (r Ref[T]) Err(name string) error {
	if r.State == RefNotFound {
		return NewReferenceNotFound(name, r.Input)
	}
	return nil
}

// Resolver переводит внешние идентификаторы (slug статуса, id пользователя, id меток) в записи
type Resolver struct {
	statuses StatusRepository
	users    UserRepository
	labels   LabelRepository
}

func NewResolver(statuses StatusRepository, users UserRepository, labels LabelRepository) *Resolver {
	return &Resolver{
		statuses: statuses,
		users:    users,
		labels:   labels,
	}
}

func (r *Resolver) ResolveStatus(ctx context.Context, slug field.Option[string]) (Ref[*status.Status], error) {
	if !slug.IsSet() {
		return Ref[*status.Status]{State: RefOmitted}, nil
	}
	value, ok := slug.Get()
	if !ok {
		return Ref[*status.Status]{State: RefCleared}, nil
	}

	found, err := r.statuses.GetBySlug(ctx, value)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Статус не найден", zap.String("slug", value))
			return Ref[*status.Status]{State: RefNotFound, Input: value}, nil
		}
		return Ref[*status.Status]{}, fmt.Errorf("поиск статуса: %w", err)
	}
	return Ref[*status.Status]{State: RefResolved, Value: found, Input: value}, nil
}

func (r *Resolver) ResolveUser(ctx context.Context, id field.Option[int64]) (Ref[*user.User], error) {
	if !id.IsSet() {
		return Ref[*user.User]{State: RefOmitted}, nil
	}
	value, ok := id.Get()
	if !ok {
		return Ref[*user.User]{State: RefCleared}, nil
	}

	input := idString(value)
	found, err := r.users.GetByID(ctx, value)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Пользователь не найден", zap.Int64("user_id", value))
			return Ref[*user.User]{State: RefNotFound, Input: input}, nil
		}
		return Ref[*user.User]{}, fmt.Errorf("поиск пользователя: %w", err)
	}
	return Ref[*user.User]{State: RefResolved, Value: found, Input: input}, nil
}

// ResolveLabels разрешает все id или ни одного: если хотя бы одной метки нет,
// результат RefNotFound с перечнем отсутствующих id.
func (r *Resolver) ResolveLabels(ctx context.Context, ids field.Option[[]int64]) (Ref[[]*label.Label], error) {
	if !ids.IsSet() {
		return Ref[[]*label.Label]{State: RefOmitted}, nil
	}
	values, ok := ids.Get()
	if !ok {
		return Ref[[]*label.Label]{State: RefCleared}, nil
	}

	unique := slices.Clone(values)
	slices.Sort(unique)
	unique = slices.Compact(unique)
	input := joinIDs(unique)

	if len(unique) == 0 {
		return Ref[[]*label.Label]{State: RefResolved, Value: []*label.Label{}, Input: input}, nil
	}

	found, err := r.labels.GetByIDs(ctx, unique)
	if err != nil {
		return Ref[[]*label.Label]{}, fmt.Errorf("поиск меток: %w", err)
	}

	if len(found) != len(unique) {
		present := make(map[int64]struct{}, len(found))
		for _, l := range found {
			present[l.ID] = struct{}{}
		}
		missing := make([]int64, 0, len(unique)-len(found))
		for _, id := range unique {
			if _, ok := present[id]; !ok {
				missing = append(missing, id)
			}
		}
		logger.Info("Service: Метки не найдены", zap.Int64s("label_ids", missing))
		return Ref[[]*label.Label]{State: RefNotFound, Input: joinIDs(missing)}, nil
	}

	return Ref[[]*label.Label]{State: RefResolved, Value: found, Input: input}, nil
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = idString(id)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func labelIDs(labels []*label.Label) []int64 {
	ids := make([]int64, len(labels))
	for i, l := range labels {
		ids[i] = l.ID
	}
	slices.Sort(ids)
	return ids
}
