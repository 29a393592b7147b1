// Package store persists contacts in memory or PostgreSQL.
package store

import (
	"context"
	"sync"

	"rubrica/internal/contacts/models"
	"rubrica/internal/listing"
	"rubrica/pkg/platform/sentinel"
)

// InMemory stores contacts in memory for demo mode and tests.
type InMemory struct {
	mu       sync.RWMutex
	contacts map[int64]models.Contact
	nextID   int64
}

func NewInMemory() *InMemory {
	return &InMemory{contacts: make(map[int64]models.Contact)}
}

// Fetch returns one sorted window and the total count from a consistent snapshot.
func (s *InMemory) Fetch(_ context.Context, w listing.Window) ([]models.Contact, int64, error) {
	s.mu.RLock()
	rows := make([]models.Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		rows = append(rows, c)
	}
	s.mu.RUnlock()

	data, total := listing.Paginate(rows, w, models.Comparators, models.ContactID)
	return data, total, nil
}

func (s *InMemory) Create(_ context.Context, fields models.ContactFields) (*models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	c := fields.WithID(s.nextID)
	s.contacts[c.ID] = *c
	return c, nil
}

// Update replaces every field of an existing contact.
func (s *InMemory) Update(_ context.Context, id int64, fields models.ContactFields) (*models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contacts[id]; !ok {
		return nil, sentinel.ErrNotFound
	}
	c := fields.WithID(id)
	s.contacts[id] = *c
	return c, nil
}

// Delete removes a contact. Deleting a missing id is not an error.
func (s *InMemory) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.contacts, id)
	return nil
}
