// Package store persists users and roles in memory or PostgreSQL.
package store

import (
	"context"
	"sort"
	"sync"

	"rubrica/internal/listing"
	"rubrica/internal/users/models"
	"rubrica/pkg/platform/sentinel"
)

// InMemory mirrors the Postgres constraints: usernames are unique and
// role_id must reference an existing role.
type InMemory struct {
	mu     sync.RWMutex
	users  map[int64]models.User
	roles  map[int64]models.Role
	nextID int64
}

// NewInMemory returns a store holding the default roles and no users.
func NewInMemory() *InMemory {
	s := &InMemory{
		users: make(map[int64]models.User),
		roles: make(map[int64]models.Role),
	}
	for _, r := range models.DefaultRoles() {
		s.roles[r.ID] = r
	}
	return s
}

func (s *InMemory) Fetch(_ context.Context, w listing.Window) ([]models.User, int64, error) {
	s.mu.RLock()
	rows := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		rows = append(rows, s.withRole(u))
	}
	s.mu.RUnlock()

	data, total := listing.Paginate(rows, w, models.Comparators, models.UserID)
	return data, total, nil
}

func (s *InMemory) Create(_ context.Context, f models.UserFields) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkConstraints(0, f); err != nil {
		return nil, err
	}
	s.nextID++
	u := models.User{ID: s.nextID, Username: f.Username, PasswordHash: f.PasswordHash, RoleID: f.RoleID}
	s.users[u.ID] = u
	out := s.withRole(u)
	return &out, nil
}

func (s *InMemory) Update(_ context.Context, id int64, f models.UserFields) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := s.checkConstraints(id, f); err != nil {
		return nil, err
	}
	existing.Username = f.Username
	existing.RoleID = f.RoleID
	if f.PasswordHash != "" {
		existing.PasswordHash = f.PasswordHash
	}
	s.users[id] = existing
	out := s.withRole(existing)
	return &out, nil
}

func (s *InMemory) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}

func (s *InMemory) ListRoles(_ context.Context) ([]models.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	roles := make([]models.Role, 0, len(s.roles))
	for _, r := range s.roles {
		roles = append(roles, r)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].ID < roles[j].ID })
	return roles, nil
}

// FindByUsername is an exact, case-sensitive match.
func (s *InMemory) FindByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			out := s.withRole(u)
			return &out, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// checkConstraints must be called with the write lock held. selfID is the
// row being updated, 0 on insert.
func (s *InMemory) checkConstraints(selfID int64, f models.UserFields) error {
	if _, ok := s.roles[f.RoleID]; !ok {
		return sentinel.ErrInvalidReference
	}
	for _, u := range s.users {
		if u.ID != selfID && u.Username == f.Username {
			return sentinel.ErrAlreadyUsed
		}
	}
	return nil
}

func (s *InMemory) withRole(u models.User) models.User {
	u.RoleName = s.roles[u.RoleID].Name
	return u
}
