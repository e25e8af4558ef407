package inmemory

import (
	"context"
	"slices"

	"taskManager/internal/models/label"
	repo "taskManager/internal/repository"
)

type LabelStorage struct {
	*state
}

func (s *LabelStorage) Create(ctx context.Context, l *label.Label) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if err := s.checkName(l.Name, 0); err != nil {
		return err
	}

	s.lastLabelID++
	l.ID = s.lastLabelID
	l.CreatedAt = s.now()

	cp := *l
	s.labels[l.ID] = &cp
	return nil
}

func (s *LabelStorage) Update(ctx context.Context, l *label.Label) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.labels[l.ID]
	if !ok {
		return repo.ErrNotFound
	}
	if err := s.checkName(l.Name, l.ID); err != nil {
		return err
	}

	l.CreatedAt = existing.CreatedAt
	cp := *l
	s.labels[l.ID] = &cp
	return nil
}

func (s *LabelStorage) GetByID(ctx context.Context, id int64) (*label.Label, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	l, ok := s.labels[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (s *LabelStorage) GetByName(ctx context.Context, name string) (*label.Label, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	for _, l := range s.labels {
		if l.Name == name {
			cp := *l
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (s *LabelStorage) GetByIDs(ctx context.Context, ids []int64) ([]*label.Label, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	res := []*label.Label{}
	for _, id := range sorted {
		if l, ok := s.labels[id]; ok {
			cp := *l
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (s *LabelStorage) List(ctx context.Context) ([]*label.Label, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*label.Label{}
	for _, l := range sortedValues(s.labels) {
		cp := *l
		res = append(res, &cp)
	}
	return res, nil
}

func (s *LabelStorage) Delete(ctx context.Context, id int64) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.labels[id]; !ok {
		return repo.ErrNotFound
	}
	for _, t := range s.tasks {
		if t.HasLabel(id) {
			return repo.ErrInUse
		}
	}
	delete(s.labels, id)
	return nil
}

func (s *LabelStorage) checkName(name string, selfID int64) error {
	for _, l := range s.labels {
		if l.Name == name && l.ID != selfID {
			return &repo.ConflictError{Field: "name", Value: name}
		}
	}
	return nil
}
