// Package seeder populates stores with demo data.
package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	contactmodels "rubrica/internal/contacts/models"
	usermodels "rubrica/internal/users/models"
	"rubrica/pkg/platform/sentinel"
)

// Default demo account. Development only.
const (
	AdminUsername = "admin"
	AdminPassword = "admin"
)

// UserStore defines methods for seeding users.
type UserStore interface {
	Create(ctx context.Context, fields usermodels.UserFields) (*usermodels.User, error)
}

// ContactStore defines methods for seeding contacts.
type ContactStore interface {
	Create(ctx context.Context, fields contactmodels.ContactFields) (*contactmodels.Contact, error)
}

type PasswordHasher interface {
	Hash(secret string) (string, error)
}

// Seeder populates stores with demo data.
type Seeder struct {
	users    UserStore
	contacts ContactStore
	hasher   PasswordHasher
	logger   *slog.Logger
}

func New(users UserStore, contacts ContactStore, hasher PasswordHasher, logger *slog.Logger) *Seeder {
	return &Seeder{
		users:    users,
		contacts: contacts,
		hasher:   hasher,
		logger:   logger,
	}
}

// SeedAll creates the demo accounts and the sample address book.
func (s *Seeder) SeedAll(ctx context.Context) error {
	s.logger.Info("seeding demo data...")

	users, err := s.seedUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	contacts, err := s.seedContacts(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed contacts: %w", err)
	}

	s.logger.Info("demo data seeded successfully",
		"users", users,
		"contacts", contacts,
	)
	return nil
}

// EnsureAdmin creates the default admin account unless the username is
// already taken.
func (s *Seeder) EnsureAdmin(ctx context.Context) error {
	created, err := s.createUser(ctx, AdminUsername, AdminPassword, usermodels.RoleAdminID)
	if err != nil {
		return err
	}
	if created {
		s.logger.Warn("created default admin account; change its password", "username", AdminUsername)
	}
	return nil
}

func (s *Seeder) seedUsers(ctx context.Context) (int, error) {
	demoUsers := []struct {
		username string
		password string
		roleID   int64
	}{
		{AdminUsername, AdminPassword, usermodels.RoleAdminID},
		{"demo", "demo", usermodels.RoleUserID},
	}

	n := 0
	for _, u := range demoUsers {
		created, err := s.createUser(ctx, u.username, u.password, u.roleID)
		if err != nil {
			return n, err
		}
		if created {
			n++
		}
	}
	return n, nil
}

func (s *Seeder) createUser(ctx context.Context, username, password string, roleID int64) (bool, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return false, fmt.Errorf("hash password for %s: %w", username, err)
	}
	_, err = s.users.Create(ctx, usermodels.UserFields{Username: username, PasswordHash: hash, RoleID: roleID})
	if errors.Is(err, sentinel.ErrAlreadyUsed) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("create user %s: %w", username, err)
	}
	return true, nil
}

func (s *Seeder) seedContacts(ctx context.Context) (int, error) {
	demoContacts := []contactmodels.ContactFields{
		{Name: "Mario", Surname: "Rossi", Phone: "+39 06 5550101", Email: "mario.rossi@example.com", Address: "Via del Corso 12, Roma"},
		{Name: "Giulia", Surname: "Bianchi", Phone: "+39 02 5550102", Email: "giulia.bianchi@example.com", Address: "Corso Buenos Aires 40, Milano"},
		{Name: "Luca", Surname: "Ferrari", Phone: "+39 011 5550103", Email: "luca.ferrari@example.com", Address: "Via Po 8, Torino"},
		{Name: "Sara", Surname: "Esposito", Phone: "+39 081 5550104", Email: "sara.esposito@example.com", Address: "Via Toledo 150, Napoli"},
		{Name: "Marco", Surname: "Romano", Phone: "+39 055 5550105", Email: "marco.romano@example.com", Address: "Via dei Calzaiuoli 3, Firenze"},
		{Name: "Chiara", Surname: "Colombo", Phone: "+39 051 5550106", Email: "chiara.colombo@example.com", Address: "Via Rizzoli 21, Bologna"},
		{Name: "Andrea", Surname: "Ricci", Phone: "+39 041 5550107", Email: "andrea.ricci@example.com", Address: "Strada Nova 77, Venezia"},
		{Name: "Elena", Surname: "Marino", Phone: "+39 010 5550108", Email: "elena.marino@example.com", Address: "Via XX Settembre 9, Genova"},
		{Name: "Paolo", Surname: "Greco", Phone: "+39 091 5550109", Email: "paolo.greco@example.com", Address: "Via Maqueda 200, Palermo"},
		{Name: "Francesca", Surname: "Bruno", Phone: "+39 080 5550110", Email: "francesca.bruno@example.com", Address: "Via Sparano 14, Bari"},
		{Name: "Davide", Surname: "Gallo", Phone: "+39 070 5550111", Email: "davide.gallo@example.com", Address: "Via Roma 5, Cagliari"},
		{Name: "Valentina", Surname: "Conti", Phone: "+39 045 5550112", Email: "valentina.conti@example.com", Address: "Via Mazzini 30, Verona"},
	}

	for i, c := range demoContacts {
		if _, err := s.contacts.Create(ctx, c); err != nil {
			return i, fmt.Errorf("create contact %s %s: %w", c.Name, c.Surname, err)
		}
	}
	return len(demoContacts), nil
}
