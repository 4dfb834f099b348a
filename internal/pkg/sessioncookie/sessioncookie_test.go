package sessioncookie

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndValidate(t *testing.T) {
	value, err := Sign("sid-123", "cookie-secret", time.Hour)
	require.NoError(t, err)

	sid, err := Validate(value, "cookie-secret")
	require.NoError(t, err)
	assert.Equal(t, "sid-123", sid)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	value, err := Sign("sid-123", "cookie-secret", time.Hour)
	require.NoError(t, err)

	_, err = Validate(value, "other-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateRejectsExpired(t *testing.T) {
	value, err := Sign("sid-123", "cookie-secret", -time.Minute)
	require.NoError(t, err)

	_, err = Validate(value, "cookie-secret")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := Validate("not.a.jwt", "cookie-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
