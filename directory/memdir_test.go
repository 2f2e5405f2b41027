package directory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/contestarena/arena/directory"
	"github.com/stretchr/testify/require"
)

func TestInMemoryDirectory(t *testing.T) {
	ctx := context.Background()
	dir := directory.NewInMemory()

	created, err := dir.Create(ctx, directory.Account{Username: "alice", Digest: "d.s", Role: directory.RoleStudent})
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)

	_, err = dir.Create(ctx, directory.Account{Username: "alice", Digest: "x.y", Role: directory.RoleStudent})
	require.ErrorIs(t, err, directory.ErrDuplicateUsername)

	_, err = dir.ByID(ctx, 99)
	require.ErrorIs(t, err, directory.ErrNotFound)

	all, err := dir.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestInMemoryDirectoryConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	dir := directory.NewInMemory()

	// Many goroutines race on the same username: exactly one may win.
	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := dir.Create(ctx, directory.Account{
				Username: "contended",
				Digest:   fmt.Sprintf("digest-%v.salt", i),
				Role:     directory.RoleStudent,
			})
			if err == nil {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	require.Equal(t, 1, winners)
}
