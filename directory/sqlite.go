package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
)

type (
	// SQLite stores accounts in a sqlite database. The UNIQUE constraint
	// on username is what makes Create atomic under concurrent
	// registrations: the database arbitrates, not the caller.
	SQLite struct {
		db *sql.DB
	}
)

func NewSQLite(ctx context.Context, db *sql.DB) (*SQLite, error) {
	_, err := db.ExecContext(ctx, `create table if not exists accounts (
		id integer primary key autoincrement,
		username text not null unique,
		digest text not null,
		role text not null,
		university text not null default '',
		email text not null default '',
		created_at integer not null)`)
	if err != nil {
		return nil, fmt.Errorf("unable to create accounts table, cause %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Create(ctx context.Context, acct Account) (Account, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `insert into accounts (username, digest, role, university, email, created_at)
		values (?, ?, ?, ?, ?, ?)`,
		acct.Username, acct.Digest, string(acct.Role), acct.University, acct.Email, now.Unix())
	if err != nil {
		var serr sqlite3.Error
		if errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return Account{}, ErrDuplicateUsername
		}
		return Account{}, fmt.Errorf("unable to insert account, cause %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Account{}, fmt.Errorf("unable to read account id, cause %w", err)
	}
	acct.ID = id
	acct.CreatedAt = now
	return acct, nil
}

func (s *SQLite) ByID(ctx context.Context, id int64) (Account, error) {
	return s.scanOne(s.db.QueryRowContext(ctx, `select id, username, digest, role, university, email, created_at
		from accounts where id = ?`, id))
}

func (s *SQLite) ByUsername(ctx context.Context, username string) (Account, error) {
	return s.scanOne(s.db.QueryRowContext(ctx, `select id, username, digest, role, university, email, created_at
		from accounts where username = ?`, username))
}

func (s *SQLite) All(ctx context.Context) ([]Account, error) {
	rows, err := s.db.QueryContext(ctx, `select id, username, digest, role, university, email, created_at
		from accounts order by id`)
	if err != nil {
		return nil, fmt.Errorf("unable to list accounts, cause %w", err)
	}
	defer rows.Close()
	var out []Account
	for rows.Next() {
		var acct Account
		var role string
		var createdAt int64
		err = rows.Scan(&acct.ID, &acct.Username, &acct.Digest, &role, &acct.University, &acct.Email, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("unable to scan account, cause %w", err)
		}
		acct.Role = Role(role)
		acct.CreatedAt = time.Unix(createdAt, 0).UTC()
		out = append(out, acct)
	}
	return out, rows.Err()
}

func (s *SQLite) scanOne(row *sql.Row) (Account, error) {
	var acct Account
	var role string
	var createdAt int64
	err := row.Scan(&acct.ID, &acct.Username, &acct.Digest, &role, &acct.University, &acct.Email, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Account{}, ErrNotFound
	} else if err != nil {
		return Account{}, fmt.Errorf("unable to scan account, cause %w", err)
	}
	acct.Role = Role(role)
	acct.CreatedAt = time.Unix(createdAt, 0).UTC()
	return acct, nil
}
