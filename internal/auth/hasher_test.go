package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	digest, err := HashPassword("TestPassword123!")
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	assert.NotEqual(t, "TestPassword123!", digest)

	ok, err := VerifyPassword("TestPassword123!", digest)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong_password", digest)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_SaltIsRandom(t *testing.T) {
	first, err := HashPassword("SamePassword1!")
	require.NoError(t, err)
	second, err := HashPassword("SamePassword1!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "two hashes of the same password must differ")

	for _, digest := range []string{first, second} {
		ok, err := VerifyPassword("SamePassword1!", digest)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestHashPassword_PHCFormat(t *testing.T) {
	digest, err := HashPassword("Str0ng!Pass")
	require.NoError(t, err)

	parts := strings.Split(digest, "$")
	require.Len(t, parts, 6)
	assert.Equal(t, "argon2id", parts[1])
	assert.Equal(t, "v=19", parts[2])
	assert.Contains(t, parts[3], "m=")
	assert.Contains(t, parts[3], "t=")
	assert.Contains(t, parts[3], "p=")
}

func TestVerifyPassword_MalformedDigest(t *testing.T) {
	malformed := []string{
		"",
		"plainhash",
		"$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA",
		"$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$!!!",
	}

	for _, digest := range malformed {
		_, err := VerifyPassword("whatever", digest)
		assert.ErrorIs(t, err, ErrMalformedHash, "digest %q should be rejected as malformed", digest)
	}
}

func TestVerifyPassword_EmptyPassword(t *testing.T) {
	digest, err := HashPassword("")
	require.NoError(t, err)

	ok, err := VerifyPassword("", digest)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("nonempty", digest)
	require.NoError(t, err)
	assert.False(t, ok)
}
