package inmemory

import (
	"context"

	"taskManager/internal/models/user"
	repo "taskManager/internal/repository"
)

type UserStorage struct {
	*state
}

func (s *UserStorage) Create(ctx context.Context, u *user.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if err := s.checkEmail(u.Email, 0); err != nil {
		return err
	}

	s.lastUserID++
	now := s.now()
	u.ID = s.lastUserID
	u.CreatedAt = now
	u.UpdatedAt = now

	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *UserStorage) Update(ctx context.Context, u *user.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.users[u.ID]
	if !ok {
		return repo.ErrNotFound
	}
	if err := s.checkEmail(u.Email, u.ID); err != nil {
		return err
	}

	u.CreatedAt = existing.CreatedAt
	u.UpdatedAt = s.now()

	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *UserStorage) GetByID(ctx context.Context, id int64) (*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *UserStorage) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (s *UserStorage) List(ctx context.Context) ([]*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*user.User{}
	for _, u := range sortedValues(s.users) {
		cp := *u
		res = append(res, &cp)
	}
	return res, nil
}

func (s *UserStorage) Delete(ctx context.Context, id int64) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.users[id]; !ok {
		return repo.ErrNotFound
	}
	for _, t := range s.tasks {
		if t.AssigneeID != nil && *t.AssigneeID == id {
			return repo.ErrInUse
		}
	}
	delete(s.users, id)
	return nil
}

func (s *UserStorage) checkEmail(email string, selfID int64) error {
	for _, u := range s.users {
		if u.Email == email && u.ID != selfID {
			return &repo.ConflictError{Field: "email", Value: email}
		}
	}
	return nil
}
