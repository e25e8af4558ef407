package inmemory

import (
	"context"

	"taskManager/internal/models/status"
	repo "taskManager/internal/repository"
)

type StatusStorage struct {
	*state
}

func (s *StatusStorage) Create(ctx context.Context, st *status.Status) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if err := s.checkUnique(st, 0); err != nil {
		return err
	}

	s.lastStatusID++
	st.ID = s.lastStatusID
	st.CreatedAt = s.now()

	cp := *st
	s.statuses[st.ID] = &cp
	return nil
}

func (s *StatusStorage) Update(ctx context.Context, st *status.Status) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.statuses[st.ID]
	if !ok {
		return repo.ErrNotFound
	}
	if err := s.checkUnique(st, st.ID); err != nil {
		return err
	}

	st.CreatedAt = existing.CreatedAt
	cp := *st
	s.statuses[st.ID] = &cp

	// slug хранится в задаче для выдачи, держим его в актуальном виде
	for _, t := range s.tasks {
		if t.StatusID == st.ID {
			t.StatusSlug = st.Slug
		}
	}
	return nil
}

func (s *StatusStorage) GetByID(ctx context.Context, id int64) (*status.Status, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	st, ok := s.statuses[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *st
	return &cp, nil
}

func (s *StatusStorage) GetBySlug(ctx context.Context, slug string) (*status.Status, error) {
	return s.find(func(st *status.Status) bool { return st.Slug == slug })
}

func (s *StatusStorage) GetByName(ctx context.Context, name string) (*status.Status, error) {
	return s.find(func(st *status.Status) bool { return st.Name == name })
}

func (s *StatusStorage) List(ctx context.Context) ([]*status.Status, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*status.Status{}
	for _, st := range sortedValues(s.statuses) {
		cp := *st
		res = append(res, &cp)
	}
	return res, nil
}

func (s *StatusStorage) Delete(ctx context.Context, id int64) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.statuses[id]; !ok {
		return repo.ErrNotFound
	}
	for _, t := range s.tasks {
		if t.StatusID == id {
			return repo.ErrInUse
		}
	}
	delete(s.statuses, id)
	return nil
}

func (s *StatusStorage) find(match func(*status.Status) bool) (*status.Status, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	for _, st := range s.statuses {
		if match(st) {
			cp := *st
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (s *StatusStorage) checkUnique(st *status.Status, selfID int64) error {
	for _, other := range s.statuses {
		if other.ID == selfID {
			continue
		}
		if other.Slug == st.Slug {
			return &repo.ConflictError{Field: "slug", Value: st.Slug}
		}
		if other.Name == st.Name {
			return &repo.ConflictError{Field: "name", Value: st.Name}
		}
	}
	return nil
}
