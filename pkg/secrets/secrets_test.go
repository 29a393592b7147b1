package secrets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	dErrors "rubrica/pkg/domain-errors"
)

func TestHasher(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	t.Run("hash then verify", func(t *testing.T) {
		hash, err := h.Hash("s3cret")
		require.NoError(t, err)
		assert.NotEqual(t, "s3cret", hash)
		assert.NoError(t, h.Verify("s3cret", hash))
	})

	t.Run("same password hashes differently", func(t *testing.T) {
		a, err := h.Hash("s3cret")
		require.NoError(t, err)
		b, err := h.Hash("s3cret")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("wrong password is invalid credentials", func(t *testing.T) {
		hash, err := h.Hash("s3cret")
		require.NoError(t, err)
		err = h.Verify("wrong", hash)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidCredentials))
	})

	t.Run("malformed hash is internal", func(t *testing.T) {
		err := h.Verify("s3cret", "not-a-bcrypt-hash")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})

	t.Run("empty password rejected", func(t *testing.T) {
		_, err := h.Hash("")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("over-long password rejected", func(t *testing.T) {
		_, err := h.Hash(strings.Repeat("x", 80))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("dummy verification does not panic", func(t *testing.T) {
		assert.NotPanics(t, func() {
			h.VerifyDummy("anything")
			h.VerifyDummy("anything else")
		})
	})
}

func TestNewHasherClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewHasher(bcrypt.MaxCost+1).cost)
	assert.Equal(t, bcrypt.MinCost, NewHasher(bcrypt.MinCost).cost)
}

func TestNewHasherPreparesDummyHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	require.NotEmpty(t, h.dummy, "the first unknown-user login must not pay for generating the dummy")
	cost, err := bcrypt.Cost(h.dummy)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost, "dummy comparisons cost the same as real ones")

	before := string(h.dummy)
	h.VerifyDummy("anything")
	assert.Equal(t, before, string(h.dummy))
}
