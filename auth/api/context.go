package api

import (
	"context"

	"github.com/contestarena/arena/auth"
)

type (
	key byte
)

var (
	identityKey = key(1)
)

func withIdentity(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom returns the identity resolved by the realm middleware.
// Requests that never passed through the middleware are Anonymous.
func IdentityFrom(ctx context.Context) auth.Identity {
	v := ctx.Value(identityKey)
	if v == nil {
		return auth.Anonymous()
	}
	return v.(auth.Identity)
}
