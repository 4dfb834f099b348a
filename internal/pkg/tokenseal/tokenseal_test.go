package tokenseal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealRoundtrip(t *testing.T) {
	s, err := New("portal-secret")
	require.NoError(t, err)

	sealed, err := s.Seal("upstream-jwt-token")
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "upstream-jwt-token")

	plain, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "upstream-jwt-token", plain)
}

func TestSealNonDeterministic(t *testing.T) {
	s, err := New("portal-secret")
	require.NoError(t, err)

	a, err := s.Seal("same-token")
	require.NoError(t, err)
	b, err := s.Seal("same-token")
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "each seal must use a fresh nonce")
}

func TestOpenRejectsTampering(t *testing.T) {
	s, err := New("portal-secret")
	require.NoError(t, err)

	sealed, err := s.Seal("token")
	require.NoError(t, err)
	sealed[len(sealed)-1] ^= 0xff

	_, err = s.Open(sealed)
	assert.ErrorIs(t, err, ErrInvalidCiphertext)
}

func TestOpenRejectsWrongKey(t *testing.T) {
	a, err := New("secret-a")
	require.NoError(t, err)
	b, err := New("secret-b")
	require.NoError(t, err)

	sealed, err := a.Seal("token")
	require.NoError(t, err)

	_, err = b.Open(sealed)
	assert.ErrorIs(t, err, ErrInvalidCiphertext)
}

func TestOpenRejectsTruncated(t *testing.T) {
	s, err := New("portal-secret")
	require.NoError(t, err)

	_, err = s.Open([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrInvalidCiphertext)
}

func TestNewRequiresSecret(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}
