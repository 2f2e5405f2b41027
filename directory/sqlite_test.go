package directory_test

import (
	"context"
	"testing"

	"github.com/contestarena/arena/directory"
	"github.com/contestarena/arena/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestSQLiteDirectory(t *testing.T) {
	ctx := context.Background()
	db, cleanup := testutil.AcquireDB(t)
	defer cleanup()
	dir, err := directory.NewSQLite(ctx, db)
	require.NoError(t, err)

	created, err := dir.Create(ctx, directory.Account{
		Username:   "alice",
		Digest:     "deadbeef.cafe",
		Role:       directory.RoleStudent,
		University: "Fudan University",
		Email:      "alice@example.com",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	byName, err := dir.ByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, created.ID, byName.ID)
	require.Equal(t, "deadbeef.cafe", byName.Digest)

	byID, err := dir.ByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", byID.Username)

	_, err = dir.ByUsername(ctx, "nobody")
	require.ErrorIs(t, err, directory.ErrNotFound)
	_, err = dir.ByID(ctx, created.ID+100)
	require.ErrorIs(t, err, directory.ErrNotFound)
}

func TestSQLiteDirectoryUniqueUsername(t *testing.T) {
	ctx := context.Background()
	db, cleanup := testutil.AcquireDB(t)
	defer cleanup()
	dir, err := directory.NewSQLite(ctx, db)
	require.NoError(t, err)

	_, err = dir.Create(ctx, directory.Account{Username: "bob", Digest: "d.s", Role: directory.RoleStudent})
	require.NoError(t, err)
	_, err = dir.Create(ctx, directory.Account{Username: "bob", Digest: "other.salt", Role: directory.RoleAdmin})
	require.ErrorIs(t, err, directory.ErrDuplicateUsername)

	// Usernames are case-sensitive: Bob and bob are distinct accounts.
	_, err = dir.Create(ctx, directory.Account{Username: "Bob", Digest: "d.s", Role: directory.RoleStudent})
	require.NoError(t, err)

	all, err := dir.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}
