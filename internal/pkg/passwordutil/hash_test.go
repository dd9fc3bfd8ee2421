package passwordutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("Abc123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.NotEqual(t, "Abc123", hash)
	assert.True(t, Verify("Abc123", hash))
	assert.False(t, Verify("abc123", hash))
	assert.False(t, Verify("", hash))
}

func TestHashIsSaltedPerCall(t *testing.T) {
	hash1, err := Hash("SamePassword1")
	require.NoError(t, err)
	hash2, err := Hash("SamePassword1")
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2)
	assert.True(t, Verify("SamePassword1", hash1))
	assert.True(t, Verify("SamePassword1", hash2))
}

func TestVerifyMalformedHashFailsClosed(t *testing.T) {
	assert.False(t, Verify("Abc123", ""))
	assert.False(t, Verify("Abc123", "not-a-bcrypt-hash"))
	assert.False(t, Verify("Abc123", "$2a$10$tooshort"))
}

func TestHashLongPassword(t *testing.T) {
	// Policy allows up to 128 characters; bcrypt only reads 72 bytes, so a
	// long password must still round-trip.
	long := "A" + strings.Repeat("a", 126) + "1"
	require.Len(t, long, 128)

	hash, err := Hash(long)
	require.NoError(t, err)
	assert.True(t, Verify(long, hash))
}
