package service

import (
	"context"
	"errors"
	"fmt"

	"taskManager/internal/logger"
	"taskManager/internal/models/status"
	rep "taskManager/internal/repository"

	"go.uber.org/zap"
)

type StatusService struct {
	repo StatusRepository
}

func NewStatusService(repo StatusRepository) *StatusService {
	return &StatusService{repo: repo}
}

func (s *StatusService) Create(ctx context.Context, data status.Draft) (*status.Status, error) {
	if err := firstErr(
		validateRequired("name", data.Name),
		validateRequired("slug", data.Slug),
	); err != nil {
		return nil, err
	}

	if err := s.checkSlugFree(ctx, data.Slug, 0); err != nil {
		return nil, err
	}
	if err := s.checkNameFree(ctx, data.Name, 0); err != nil {
		return nil, err
	}

	st := &status.Status{
		Name: data.Name,
		Slug: data.Slug,
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, mapWriteError(ResourceStatus, err)
	}

	logger.Info("Service: Статус создан", zap.Int64("status_id", st.ID), zap.String("slug", st.Slug))
	return st, nil
}

func (s *StatusService) Update(ctx context.Context, id int64, data status.Patch) (*status.Status, error) {
	st, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	name, nameSet, err := validateSet("name", data.Name, validateRequired)
	if err != nil {
		return nil, err
	}
	slug, slugSet, err := validateSet("slug", data.Slug, validateRequired)
	if err != nil {
		return nil, err
	}

	if slugSet && slug != st.Slug {
		if err := s.checkSlugFree(ctx, slug, st.ID); err != nil {
			return nil, err
		}
		st.Slug = slug
	}
	if nameSet && name != st.Name {
		if err := s.checkNameFree(ctx, name, st.ID); err != nil {
			return nil, err
		}
		st.Name = name
	}

	if err := s.repo.Update(ctx, st); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewNotFound(ResourceStatus, id)
		}
		return nil, mapWriteError(ResourceStatus, err)
	}

	logger.Info("Service: Статус обновлён", zap.Int64("status_id", st.ID))
	return st, nil
}

func (s *StatusService) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, ResourceStatus, id, s.repo.Delete)
}

func (s *StatusService) GetByID(ctx context.Context, id int64) (*status.Status, error) {
	return s.load(ctx, id)
}

func (s *StatusService) List(ctx context.Context) ([]*status.Status, error) {
	statuses, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение статусов: %w", err)
	}
	return statuses, nil
}

func (s *StatusService) load(ctx context.Context, id int64) (*status.Status, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewNotFound(ResourceStatus, id)
		}
		return nil, fmt.Errorf("получение статуса: %w", err)
	}
	return st, nil
}

func (s *StatusService) checkSlugFree(ctx context.Context, slug string, selfID int64) error {
	existing, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("проверка slug: %w", err)
	}
	if existing.ID != selfID {
		return NewConflict(ResourceStatus, "slug", slug)
	}
	return nil
}

func (s *StatusService) checkNameFree(ctx context.Context, name string, selfID int64) error {
	existing, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("проверка имени статуса: %w", err)
	}
	if existing.ID != selfID {
		return NewConflict(ResourceStatus, "name", name)
	}
	return nil
}
