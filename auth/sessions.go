package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
)

type (
	// SessionStore binds opaque tokens to account ids. Expiry is the
	// store's concern: entries vanish a fixed interval after Put, with no
	// sliding renewal on access. Implementations must be safe for
	// concurrent use, since every request performs a lookup.
	SessionStore interface {
		Put(ctx context.Context, token string, accountID int64) error
		Get(ctx context.Context, token string) (int64, bool, error)
		// Delete is idempotent: removing an absent token is not an error.
		Delete(ctx context.Context, token string) error
	}
)

// NewSessionToken returns 32 bytes from the system RNG, base64url encoded.
// The encoding contains no '.' so tokens compose safely with the signed
// cookie format.
func NewSessionToken() (string, error) {
	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", HashingError{Cause: err}
	}
	return base64.RawURLEncoding.EncodeToString(b[:]), nil
}
