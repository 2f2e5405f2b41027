// Package directory is the account store: a thin CRUD layer over
// identity records. The one invariant it owns is username uniqueness,
// which every implementation must enforce atomically at insert time
// rather than by a separate lookup.
package directory

import (
	"context"
	"errors"
	"time"
)

type (
	Role string

	// Account is an identity record. The digest is the hasher's
	// serialized form and is excluded from JSON so it can never leak
	// through a response body by accident.
	Account struct {
		ID         int64     `json:"id"`
		Username   string    `json:"username"`
		Digest     string    `json:"-"`
		Role       Role      `json:"role"`
		University string    `json:"university,omitempty"`
		Email      string    `json:"email,omitempty"`
		CreatedAt  time.Time `json:"createdAt"`
	}

	Directory interface {
		// Create persists acct and returns it with ID and CreatedAt
		// populated. A username collision fails with
		// ErrDuplicateUsername and leaves the existing account intact.
		Create(ctx context.Context, acct Account) (Account, error)
		ByID(ctx context.Context, id int64) (Account, error)
		ByUsername(ctx context.Context, username string) (Account, error)
		All(ctx context.Context) ([]Account, error)
	}
)

const (
	RoleStudent = Role("student")
	RoleAdmin   = Role("admin")
)

var (
	ErrNotFound          = errors.New("account not found")
	ErrDuplicateUsername = errors.New("username already exists")
)
