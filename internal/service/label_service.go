package service

import (
	"context"
	"errors"
	"fmt"

	"taskManager/internal/logger"
	"taskManager/internal/models/label"
	rep "taskManager/internal/repository"

	"go.uber.org/zap"
)

type LabelService struct {
	repo LabelRepository
}

func NewLabelService(repo LabelRepository) *LabelService {
	return &LabelService{repo: repo}
}

func (s *LabelService) Create(ctx context.Context, data label.Draft) (*label.Label, error) {
	if err := validateLabelName("name", data.Name); err != nil {
		return nil, err
	}
	if err := s.checkNameFree(ctx, data.Name, 0); err != nil {
		return nil, err
	}

	l := &label.Label{Name: data.Name}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, mapWriteError(ResourceLabel, err)
	}

	logger.Info("Service: Метка создана", zap.Int64("label_id", l.ID), zap.String("name", l.Name))
	return l, nil
}

func (s *LabelService) Update(ctx context.Context, id int64, data label.Patch) (*label.Label, error) {
	l, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	name, nameSet, err := validateSet("name", data.Name, validateLabelName)
	if err != nil {
		return nil, err
	}
	if !nameSet || name == l.Name {
		return l, nil
	}

	if err := s.checkNameFree(ctx, name, l.ID); err != nil {
		return nil, err
	}
	l.Name = name

	if err := s.repo.Update(ctx, l); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewNotFound(ResourceLabel, id)
		}
		return nil, mapWriteError(ResourceLabel, err)
	}

	logger.Info("Service: Метка обновлена", zap.Int64("label_id", l.ID))
	return l, nil
}

func (s *LabelService) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, ResourceLabel, id, s.repo.Delete)
}

func (s *LabelService) GetByID(ctx context.Context, id int64) (*label.Label, error) {
	return s.load(ctx, id)
}

func (s *LabelService) List(ctx context.Context) ([]*label.Label, error) {
	labels, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение меток: %w", err)
	}
	return labels, nil
}

func (s *LabelService) load(ctx context.Context, id int64) (*label.Label, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewNotFound(ResourceLabel, id)
		}
		return nil, fmt.Errorf("получение метки: %w", err)
	}
	return l, nil
}

func (s *LabelService) checkNameFree(ctx context.Context, name string, selfID int64) error {
	existing, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("проверка имени метки: %w", err)
	}
	if existing.ID != selfID {
		return NewConflict(ResourceLabel, "name", name)
	}
	return nil
}
