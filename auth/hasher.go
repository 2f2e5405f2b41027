package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// scrypt cost parameters, fixed for every account. Changing them would
// invalidate stored digests, so treat them as part of the on-disk format.
const (
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1

	digestSize = 64
	saltSize   = 16
)

// HashPassword derives a storable digest from plaintext using a fresh
// random salt. The result is "<hex digest>.<hex salt>"; the dot can never
// appear inside either hex component, so the format is unambiguous.
//
// It only fails when the system RNG or the KDF itself fails, and then
// with a HashingError.
func HashPassword(plaintext string) (string, error) {
	var salt [saltSize]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return "", HashingError{Cause: err}
	}
	hexSalt := hex.EncodeToString(salt[:])
	key, err := scrypt.Key([]byte(plaintext), []byte(hexSalt), scryptN, scryptR, scryptP, digestSize)
	if err != nil {
		return "", HashingError{Cause: err}
	}
	return hex.EncodeToString(key) + "." + hexSalt, nil
}

// VerifyPassword reports whether plaintext matches the stored digest.
//
// It fails closed: an empty, separator-less or otherwise malformed stored
// value is a mismatch, never an error. Comparison runs in constant time
// so a byte-wise timing probe learns nothing about the digest.
func VerifyPassword(plaintext, stored string) bool {
	hexDigest, hexSalt, ok := splitDigest(stored)
	if !ok {
		return false
	}
	want, err := hex.DecodeString(hexDigest)
	if err != nil {
		return false
	}
	got, err := scrypt.Key([]byte(plaintext), []byte(hexSalt), scryptN, scryptR, scryptP, digestSize)
	if err != nil {
		return false
	}
	// ConstantTimeCompare returns 0 for length mismatches without
	// inspecting content, which covers truncated legacy records.
	return subtle.ConstantTimeCompare(want, got) == 1
}

func splitDigest(stored string) (hexDigest, hexSalt string, ok bool) {
	if stored == "" {
		return "", "", false
	}
	i := strings.IndexByte(stored, '.')
	if i <= 0 || i == len(stored)-1 {
		return "", "", false
	}
	return stored[:i], stored[i+1:], true
}
