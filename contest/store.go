package contest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
)

type (
	// Store persists the catalog in sqlite. The unique index on
	// (user_id, competition_id) makes duplicate registrations a storage
	// level conflict instead of a check-then-insert race.
	Store struct {
		db *sql.DB
	}
)

func NewStore(ctx context.Context, db *sql.DB) (*Store, error) {
	stmts := []string{
		`create table if not exists tracks (
			id integer primary key autoincrement,
			name text not null,
			description text not null default '',
			icon text not null default '',
			created_at integer not null)`,
		`create table if not exists competitions (
			id integer primary key autoincrement,
			title text not null,
			description text not null default '',
			image_url text not null default '',
			track_id integer not null references tracks(id),
			registration_deadline integer,
			start_date integer,
			end_date integer,
			status text not null default 'active',
			created_at integer not null)`,
		`create table if not exists registrations (
			id integer primary key autoincrement,
			user_id integer not null,
			competition_id integer not null,
			team_name text not null default '',
			status text not null default 'pending',
			created_at integer not null,
			unique(user_id, competition_id))`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return nil, fmt.Errorf("unable to prepare catalog tables, cause %w", err)
		}
	}
	return &Store{db: db}, nil
}

// === tracks ===

func (s *Store) Tracks(ctx context.Context) ([]Track, error) {
	rows, err := s.db.QueryContext(ctx, `select id, name, description, icon, created_at from tracks order by id`)
	if err != nil {
		return nil, fmt.Errorf("unable to list tracks, cause %w", err)
	}
	defer rows.Close()
	var out []Track
	for rows.Next() {
		var t Track
		var createdAt int64
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Icon, &createdAt); err != nil {
			return nil, fmt.Errorf("unable to scan track, cause %w", err)
		}
		t.CreatedAt = time.Unix(createdAt, 0).UTC()
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) Track(ctx context.Context, id int64) (Track, error) {
	var t Track
	var createdAt int64
	err := s.db.QueryRowContext(ctx, `select id, name, description, icon, created_at from tracks where id = ?`, id).
		Scan(&t.ID, &t.Name, &t.Description, &t.Icon, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Track{}, ErrNotFound
	} else if err != nil {
		return Track{}, fmt.Errorf("unable to load track, cause %w", err)
	}
	t.CreatedAt = time.Unix(createdAt, 0).UTC()
	return t, nil
}

func (s *Store) CreateTrack(ctx context.Context, t Track) (Track, error) {
	if err := t.validate(); err != nil {
		return Track{}, err
	}
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `insert into tracks (name, description, icon, created_at) values (?, ?, ?, ?)`,
		t.Name, t.Description, t.Icon, now.Unix())
	if err != nil {
		return Track{}, fmt.Errorf("unable to insert track, cause %w", err)
	}
	t.ID, err = res.LastInsertId()
	if err != nil {
		return Track{}, fmt.Errorf("unable to read track id, cause %w", err)
	}
	t.CreatedAt = now
	return t, nil
}

// === competitions ===

func (s *Store) Competitions(ctx context.Context) ([]Competition, error) {
	rows, err := s.db.QueryContext(ctx, `select id, title, description, image_url, track_id,
		registration_deadline, start_date, end_date, status, created_at
		from competitions order by id`)
	if err != nil {
		return nil, fmt.Errorf("unable to list competitions, cause %w", err)
	}
	defer rows.Close()
	var out []Competition
	for rows.Next() {
		c, err := scanCompetition(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) Competition(ctx context.Context, id int64) (Competition, error) {
	row := s.db.QueryRowContext(ctx, `select id, title, description, image_url, track_id,
		registration_deadline, start_date, end_date, status, created_at
		from competitions where id = ?`, id)
	c, err := scanCompetition(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Competition{}, ErrNotFound
	}
	return c, err
}

func (s *Store) CreateCompetition(ctx context.Context, c Competition) (Competition, error) {
	if err := c.validate(); err != nil {
		return Competition{}, err
	}
	if c.Status == "" {
		c.Status = CompetitionActive
	}
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `insert into competitions
		(title, description, image_url, track_id, registration_deadline, start_date, end_date, status, created_at)
		values (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Title, c.Description, c.ImageURL, c.TrackID,
		unixOrNil(c.RegistrationDeadline), unixOrNil(c.StartDate), unixOrNil(c.EndDate),
		c.Status, now.Unix())
	if err != nil {
		var serr sqlite3.Error
		if errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
			return Competition{}, ErrUnknownTrack
		}
		return Competition{}, fmt.Errorf("unable to insert competition, cause %w", err)
	}
	c.ID, err = res.LastInsertId()
	if err != nil {
		return Competition{}, fmt.Errorf("unable to read competition id, cause %w", err)
	}
	c.CreatedAt = now
	return c, nil
}

// UpdateCompetition replaces the mutable fields of the competition
// identified by id. The id and creation time never change.
func (s *Store) UpdateCompetition(ctx context.Context, id int64, c Competition) (Competition, error) {
	if err := c.validate(); err != nil {
		return Competition{}, err
	}
	if c.Status == "" {
		c.Status = CompetitionActive
	}
	res, err := s.db.ExecContext(ctx, `update competitions set
		title = ?, description = ?, image_url = ?, track_id = ?,
		registration_deadline = ?, start_date = ?, end_date = ?, status = ?
		where id = ?`,
		c.Title, c.Description, c.ImageURL, c.TrackID,
		unixOrNil(c.RegistrationDeadline), unixOrNil(c.StartDate), unixOrNil(c.EndDate),
		c.Status, id)
	if err != nil {
		var serr sqlite3.Error
		if errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
			return Competition{}, ErrUnknownTrack
		}
		return Competition{}, fmt.Errorf("unable to update competition, cause %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Competition{}, fmt.Errorf("unable to check update result, cause %w", err)
	}
	if n == 0 {
		return Competition{}, ErrNotFound
	}
	return s.Competition(ctx, id)
}

// DeleteCompetition is idempotent: deleting an absent id is not an error.
func (s *Store) DeleteCompetition(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `delete from competitions where id = ?`, id)
	if err != nil {
		return fmt.Errorf("unable to delete competition, cause %w", err)
	}
	return nil
}

// === registrations ===

func (s *Store) Registrations(ctx context.Context) ([]Registration, error) {
	rows, err := s.db.QueryContext(ctx, `select id, user_id, competition_id, team_name, status, created_at
		from registrations order by id`)
	if err != nil {
		return nil, fmt.Errorf("unable to list registrations, cause %w", err)
	}
	defer rows.Close()
	var out []Registration
	for rows.Next() {
		var r Registration
		var createdAt int64
		if err := rows.Scan(&r.ID, &r.UserID, &r.CompetitionID, &r.TeamName, &r.Status, &createdAt); err != nil {
			return nil, fmt.Errorf("unable to scan registration, cause %w", err)
		}
		r.CreatedAt = time.Unix(createdAt, 0).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) CreateRegistration(ctx context.Context, r Registration) (Registration, error) {
	if err := r.validate(); err != nil {
		return Registration{}, err
	}
	if r.Status == "" {
		r.Status = RegistrationPending
	}
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `insert into registrations (user_id, competition_id, team_name, status, created_at)
		values (?, ?, ?, ?, ?)`,
		r.UserID, r.CompetitionID, r.TeamName, r.Status, now.Unix())
	if err != nil {
		var serr sqlite3.Error
		if errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return Registration{}, ErrAlreadyRegistered
		}
		return Registration{}, fmt.Errorf("unable to insert registration, cause %w", err)
	}
	r.ID, err = res.LastInsertId()
	if err != nil {
		return Registration{}, fmt.Errorf("unable to read registration id, cause %w", err)
	}
	r.CreatedAt = now
	return r, nil
}

func (s *Store) IsRegistered(ctx context.Context, userID, competitionID int64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `select 1 from registrations where user_id = ? and competition_id = ?`,
		userID, competitionID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("unable to check registration, cause %w", err)
	}
	return true, nil
}

func (s *Store) SetRegistrationStatus(ctx context.Context, id int64, status string) (Registration, error) {
	if !ValidRegistrationStatus(status) {
		return Registration{}, InvalidInput{Fields: map[string]string{
			"status": "status must be one of pending, approved, rejected",
		}}
	}
	res, err := s.db.ExecContext(ctx, `update registrations set status = ? where id = ?`, status, id)
	if err != nil {
		return Registration{}, fmt.Errorf("unable to update registration, cause %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Registration{}, fmt.Errorf("unable to check update result, cause %w", err)
	}
	if n == 0 {
		return Registration{}, ErrNotFound
	}
	var r Registration
	var createdAt int64
	err = s.db.QueryRowContext(ctx, `select id, user_id, competition_id, team_name, status, created_at
		from registrations where id = ?`, id).
		Scan(&r.ID, &r.UserID, &r.CompetitionID, &r.TeamName, &r.Status, &createdAt)
	if err != nil {
		return Registration{}, fmt.Errorf("unable to load registration, cause %w", err)
	}
	r.CreatedAt = time.Unix(createdAt, 0).UTC()
	return r, nil
}

func scanCompetition(scan func(...interface{}) error) (Competition, error) {
	var c Competition
	var deadline, start, end sql.NullInt64
	var createdAt int64
	err := scan(&c.ID, &c.Title, &c.Description, &c.ImageURL, &c.TrackID,
		&deadline, &start, &end, &c.Status, &createdAt)
	if err != nil {
		return Competition{}, err
	}
	c.RegistrationDeadline = timeOrNil(deadline)
	c.StartDate = timeOrNil(start)
	c.EndDate = timeOrNil(end)
	c.CreatedAt = time.Unix(createdAt, 0).UTC()
	return c, nil
}

func unixOrNil(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Unix()
}

func timeOrNil(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.Unix(v.Int64, 0).UTC()
	return &t
}
