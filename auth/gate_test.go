package auth

import (
	"testing"

	"github.com/contestarena/arena/directory"
	"github.com/stretchr/testify/require"
)

func TestGateOrdering(t *testing.T) {
	// An anonymous caller hitting a role gate must observe the missing
	// authentication, never the role mismatch.
	_, err := RequireRole(Anonymous(), directory.RoleAdmin)
	require.ErrorIs(t, err, ErrUnauthenticated)

	student := AuthenticatedAs(directory.Account{ID: 1, Username: "alice", Role: directory.RoleStudent})
	_, err = RequireRole(student, directory.RoleAdmin)
	require.ErrorIs(t, err, ErrForbidden)

	admin := AuthenticatedAs(directory.Account{ID: 2, Username: "root", Role: directory.RoleAdmin})
	acct, err := RequireRole(admin, directory.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, "root", acct.Username)
}

func TestRequireAuthenticated(t *testing.T) {
	_, err := RequireAuthenticated(Anonymous())
	require.ErrorIs(t, err, ErrUnauthenticated)

	acct, err := RequireAuthenticated(AuthenticatedAs(directory.Account{ID: 7, Username: "bob"}))
	require.NoError(t, err)
	require.Equal(t, int64(7), acct.ID)
}

func TestIdentityDropsDigest(t *testing.T) {
	id := AuthenticatedAs(directory.Account{ID: 1, Username: "alice", Digest: "hash.salt"})
	acct, ok := id.Account()
	require.True(t, ok)
	require.Empty(t, acct.Digest, "identities must never carry the digest around")
}
