package auth

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPasswordProducesUniqueSalts(t *testing.T) {
	first, err := HashPassword("s3cret!")
	require.NoError(t, err)
	second, err := HashPassword("s3cret!")
	require.NoError(t, err)
	require.NotEqual(t, first, second, "two hashes of the same password must use distinct salts")

	require.True(t, VerifyPassword("s3cret!", first))
	require.True(t, VerifyPassword("s3cret!", second))
}

func TestHashPasswordFormat(t *testing.T) {
	digest, err := HashPassword("anything")
	require.NoError(t, err)
	parts := strings.SplitN(digest, ".", 2)
	require.Len(t, parts, 2)

	hash, err := hex.DecodeString(parts[0])
	require.NoError(t, err)
	require.Len(t, hash, digestSize)
	salt, err := hex.DecodeString(parts[1])
	require.NoError(t, err)
	require.Len(t, salt, saltSize)
}

func TestVerifyPasswordRejectsWrongPassword(t *testing.T) {
	digest, err := HashPassword("correct horse")
	require.NoError(t, err)
	require.False(t, VerifyPassword("correct horsf", digest))
	require.False(t, VerifyPassword("", digest))
}

func TestVerifyPasswordFailsClosed(t *testing.T) {
	// Malformed stored values are a mismatch, never a panic or an error.
	for _, stored := range []string{
		"",
		"nosep",
		".saltonly",
		"hashonly.",
		"zz.zz",
		"deadbeef.zz",
		".",
	} {
		require.False(t, VerifyPassword("anything", stored), "stored=%q", stored)
	}
}

func TestVerifyPasswordLengthMismatch(t *testing.T) {
	digest, err := HashPassword("a password")
	require.NoError(t, err)
	// Truncate the digest half: the lengths no longer match and the
	// constant-time comparison must report a mismatch, not blow up.
	i := strings.IndexByte(digest, '.')
	truncated := digest[:i-4] + digest[i:]
	require.False(t, VerifyPassword("a password", truncated))
}
