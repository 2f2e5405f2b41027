package directory

import (
	"context"
	"sync"
	"time"
)

type (
	// InMemory keeps accounts in a mutex-guarded map. The duplicate
	// check and the insert happen under one lock acquisition, so it
	// honors the same atomic-uniqueness contract as the sqlite store.
	InMemory struct {
		mu       sync.RWMutex
		byID     map[int64]Account
		username map[string]int64
		nextID   int64
	}
)

func NewInMemory() *InMemory {
	return &InMemory{
		byID:     map[int64]Account{},
		username: map[string]int64{},
		nextID:   1,
	}
}

func (m *InMemory) Create(ctx context.Context, acct Account) (Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, found := m.username[acct.Username]; found {
		return Account{}, ErrDuplicateUsername
	}
	acct.ID = m.nextID
	acct.CreatedAt = time.Now().UTC()
	m.nextID++
	m.byID[acct.ID] = acct
	m.username[acct.Username] = acct.ID
	return acct, nil
}

func (m *InMemory) ByID(ctx context.Context, id int64) (Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	acct, found := m.byID[id]
	if !found {
		return Account{}, ErrNotFound
	}
	return acct, nil
}

func (m *InMemory) ByUsername(ctx context.Context, username string) (Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, found := m.username[username]
	if !found {
		return Account{}, ErrNotFound
	}
	return m.byID[id], nil
}

func (m *InMemory) All(ctx context.Context) ([]Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Account, 0, len(m.byID))
	for id := int64(1); id < m.nextID; id++ {
		if acct, found := m.byID[id]; found {
			out = append(out, acct)
		}
	}
	return out, nil
}
