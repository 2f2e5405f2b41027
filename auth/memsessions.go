package auth

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"
)

type (
	memStore struct {
		cache *bigcache.BigCache
	}
)

// InMemorySessionStore is the deployed default: sessions live in process
// memory and expire ttl after creation. bigcache's clean window doubles
// as the periodic expiry sweep.
func InMemorySessionStore(ttl time.Duration) (SessionStore, error) {
	cfg := bigcache.DefaultConfig(ttl)
	cfg.CleanWindow = time.Minute
	cache, err := bigcache.NewBigCache(cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize session cache, cause %w", err)
	}
	return &memStore{cache: cache}, nil
}

func (m *memStore) Put(ctx context.Context, token string, accountID int64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(accountID))
	return m.cache.Set(token, buf[:])
}

func (m *memStore) Get(ctx context.Context, token string) (int64, bool, error) {
	buf, err := m.cache.Get(token)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return 0, false, nil
	} else if err != nil {
		return 0, false, err
	}
	if len(buf) != 8 {
		return 0, false, nil
	}
	return int64(binary.BigEndian.Uint64(buf)), true, nil
}

func (m *memStore) Delete(ctx context.Context, token string) error {
	err := m.cache.Delete(token)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return nil
	}
	return err
}
