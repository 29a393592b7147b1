package secrets

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"

	dErrors "rubrica/pkg/domain-errors"
)

// Hasher hashes and verifies passwords with bcrypt at a fixed cost.
// The cost is injectable so tests can use bcrypt.MinCost.
type Hasher struct {
	cost  int
	dummy []byte
}

// NewHasher returns a Hasher using cost. Costs outside bcrypt's range fall
// back to bcrypt.DefaultCost. The dummy hash for VerifyDummy is generated
// here, so no login pays for it.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	// GenerateFromPassword salts randomly, so the dummy is unique per process.
	dummy, err := bcrypt.GenerateFromPassword([]byte("rubrica-dummy-password"), cost)
	if err != nil {
		// only reachable on a broken entropy source
		panic("secrets: cannot generate dummy hash: " + err.Error())
	}
	return &Hasher{cost: cost, dummy: dummy}
}

var defaultHasher = sync.OnceValue(func() *Hasher {
	return NewHasher(bcrypt.DefaultCost)
})

// Hash creates a bcrypt hash of the provided secret using the default cost.
func Hash(secret string) (string, error) {
	return defaultHasher().Hash(secret)
}

// Verify checks a plaintext secret against a bcrypt hash using the default hasher.
func Verify(secret, hash string) error {
	return defaultHasher().Verify(secret, hash)
}

// Hash creates a bcrypt hash of the provided secret.
func (h *Hasher) Hash(secret string) (string, error) {
	if secret == "" {
		return "", dErrors.New(dErrors.CodeValidation, "password cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", dErrors.New(dErrors.CodeValidation, "password is too long")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not hash password")
	}
	return string(hashed), nil
}

// Verify checks if a plaintext secret matches a bcrypt hash.
// A mismatch is reported as invalid credentials; a malformed hash is internal.
func (h *Hasher) Verify(secret, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return dErrors.New(dErrors.CodeInvalidCredentials, "invalid credentials")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "could not verify password")
	}
	return nil
}

// VerifyDummy burns one bcrypt comparison against a throwaway hash.
// Call it when the principal does not exist so the response time matches a
// wrong-password attempt.
func (h *Hasher) VerifyDummy(secret string) {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(secret))
}
