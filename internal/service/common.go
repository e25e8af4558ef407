package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskManager/internal/logger"
	"taskManager/internal/models/field"
	rep "taskManager/internal/repository"

	"go.uber.org/zap"
)

// mapWriteError переводит ошибки хранилища при записи в бизнес-ошибки.
// Сюда попадают гонки, которые не поймала предварительная проверка.
func mapWriteError(resource Resource, err error) error {
	var conflict *rep.ConflictError
	if errors.As(err, &conflict) {
		logger.Warn("Service: Нарушение уникальности при записи",
			zap.String("resource", string(resource)),
			zap.String("field", conflict.Field))
		return NewConflict(resource, conflict.Field, conflict.Value)
	}

	var ref *rep.ReferenceError
	if errors.As(err, &ref) {
		logger.Warn("Service: Ссылка исчезла при записи",
			zap.String("resource", string(resource)),
			zap.String("field", ref.Field))
		return NewReferenceNotFound(ref.Field, ref.Value)
	}

	return fmt.Errorf("запись %s: %w", resource, err)
}

// deleteByID идемпотентен: отсутствие записи не ошибка
func deleteByID(ctx context.Context, resource Resource, id int64, del func(context.Context, int64) error) error {
	err := del(ctx, id)
	switch {
	case err == nil:
		logger.Info("Service: Запись удалена", zap.String("resource", string(resource)), zap.Int64("id", id))
		return nil
	case errors.Is(err, rep.ErrNotFound):
		logger.Info("Service: Удаление несуществующей записи", zap.String("resource", string(resource)), zap.Int64("id", id))
		return nil
	case errors.Is(err, rep.ErrInUse):
		return NewInUse(resource, id)
	default:
		return fmt.Errorf("удаление %s: %w", resource, err)
	}
}

func trimmed(opt field.Option[string]) field.Option[string] {
	if v, ok := opt.Get(); ok {
		return field.Some(strings.TrimSpace(v))
	}
	return opt
}
