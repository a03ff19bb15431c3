package cryptox_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck/pkg/cryptox"
	"golang.org/x/crypto/bcrypt"
)

func TestNewHasher(t *testing.T) {
	t.Run("zero cost selects default", func(t *testing.T) {
		h, err := cryptox.NewHasher(0)
		require.NoError(t, err)
		require.NotNil(t, h)
	})

	t.Run("rejects out of range cost", func(t *testing.T) {
		_, err := cryptox.NewHasher(bcrypt.MaxCost + 1)
		require.Error(t, err)
	})
}

func TestHashAndVerify(t *testing.T) {
	// MinCost keeps the test fast; production uses DefaultCost.
	h, err := cryptox.NewHasher(bcrypt.MinCost)
	require.NoError(t, err)

	hash, err := h.Hash("Aa1!aaaa")
	require.NoError(t, err)
	require.NotEqual(t, "Aa1!aaaa", hash)

	require.NoError(t, h.Verify("Aa1!aaaa", hash))
	require.ErrorIs(t, h.Verify("wrong", hash), cryptox.ErrPasswordMismatch)
	require.ErrorIs(t, h.Verify("Aa1!aaaa", "not-a-hash"), cryptox.ErrPasswordMismatch)
}

func TestHashIsSalted(t *testing.T) {
	h, err := cryptox.NewHasher(bcrypt.MinCost)
	require.NoError(t, err)

	a, err := h.Hash("same-password")
	require.NoError(t, err)
	b, err := h.Hash("same-password")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
}
