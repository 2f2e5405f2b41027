package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/contestarena/arena/directory"
	"github.com/contestarena/arena/internal/logutil"
)

type (
	// Service orchestrates registration, login, logout and session
	// resolution on top of an account directory and a session store.
	// Both collaborators are injected; the service itself is stateless
	// apart from a decoy digest used for timing parity.
	Service struct {
		dir      directory.Directory
		sessions SessionStore
		decoy    string
	}

	// RegisterRequest is the registration input as submitted by the
	// client. Role defaults to student when absent.
	RegisterRequest struct {
		Username   string `json:"username"`
		Password   string `json:"password"`
		Role       string `json:"role,omitempty"`
		University string `json:"university,omitempty"`
		Email      string `json:"email,omitempty"`
	}
)

const (
	maxUsernameLen = 64
)

// NewService wires a Service. It pre-computes a decoy digest from a
// random throwaway password so that Login can burn a real scrypt call
// when the username does not exist.
func NewService(dir directory.Directory, sessions SessionStore) (*Service, error) {
	var junk [24]byte
	if _, err := rand.Read(junk[:]); err != nil {
		return nil, HashingError{Cause: err}
	}
	decoy, err := HashPassword(base64.RawStdEncoding.EncodeToString(junk[:]))
	if err != nil {
		return nil, err
	}
	return &Service{dir: dir, sessions: sessions, decoy: decoy}, nil
}

// Register validates req, creates the account and logs it in. The
// returned account never carries a digest, and the plaintext password is
// not retained beyond the hashing call.
//
// Uniqueness of the username is enforced by the directory itself (a
// unique index or equivalent atomic insert), so two concurrent
// registrations cannot both win; the loser observes
// directory.ErrDuplicateUsername.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (directory.Account, string, error) {
	if err := req.validate(); err != nil {
		return directory.Account{}, "", err
	}
	digest, err := HashPassword(req.Password)
	if err != nil {
		return directory.Account{}, "", err
	}
	role := directory.Role(req.Role)
	if role == "" {
		role = directory.RoleStudent
	}
	acct, err := s.dir.Create(ctx, directory.Account{
		Username:   req.Username,
		Digest:     digest,
		Role:       role,
		University: req.University,
		Email:      req.Email,
	})
	if err != nil {
		return directory.Account{}, "", err
	}
	log := logutil.GetOrDefault(ctx)
	log.Info().
		Str("username", acct.Username).
		Str("role", string(acct.Role)).
		Msg("Account registered")
	token, err := s.establish(ctx, acct.ID)
	if err != nil {
		return directory.Account{}, "", err
	}
	return sanitize(acct), token, nil
}

// Login verifies the credentials and establishes a session. Unknown
// usernames and wrong passwords are deliberately indistinguishable: both
// return ErrInvalidCredentials, and the unknown-user path still performs
// a full verification against the decoy digest.
func (s *Service) Login(ctx context.Context, username, password string) (directory.Account, string, error) {
	acct, err := s.dir.ByUsername(ctx, username)
	if errors.Is(err, directory.ErrNotFound) {
		VerifyPassword(password, s.decoy)
		return directory.Account{}, "", ErrInvalidCredentials
	} else if err != nil {
		return directory.Account{}, "", fmt.Errorf("unable to look up account: %w", err)
	}
	if !VerifyPassword(password, acct.Digest) {
		return directory.Account{}, "", ErrInvalidCredentials
	}
	token, err := s.establish(ctx, acct.ID)
	if err != nil {
		return directory.Account{}, "", err
	}
	return sanitize(acct), token, nil
}

// Logout drops the session binding. Absent or already-destroyed tokens
// are not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// CurrentUser resolves token to an identity. An absent or expired
// session, or a session whose account has since disappeared, yields
// Anonymous rather than an error: not being logged in is an expected
// state, not a fault.
func (s *Service) CurrentUser(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Anonymous(), nil
	}
	accountID, ok, err := s.sessions.Get(ctx, token)
	if err != nil {
		return Anonymous(), fmt.Errorf("unable to resolve session: %w", err)
	}
	if !ok {
		return Anonymous(), nil
	}
	acct, err := s.dir.ByID(ctx, accountID)
	if errors.Is(err, directory.ErrNotFound) {
		return Anonymous(), nil
	} else if err != nil {
		return Anonymous(), fmt.Errorf("unable to load account: %w", err)
	}
	return AuthenticatedAs(acct), nil
}

func (s *Service) establish(ctx context.Context, accountID int64) (string, error) {
	token, err := NewSessionToken()
	if err != nil {
		return "", err
	}
	if err := s.sessions.Put(ctx, token, accountID); err != nil {
		return "", fmt.Errorf("unable to persist session: %w", err)
	}
	return token, nil
}

func sanitize(acct directory.Account) directory.Account {
	acct.Digest = ""
	return acct
}

func (r RegisterRequest) validate() error {
	fields := map[string]string{}
	switch {
	case strings.TrimSpace(r.Username) == "":
		fields["username"] = "username is required"
	case len(r.Username) > maxUsernameLen:
		fields["username"] = fmt.Sprintf("username must be at most %v characters", maxUsernameLen)
	}
	// Any non-empty password is accepted; strength policy is the
	// client's concern, not a storage rule.
	if r.Password == "" {
		fields["password"] = "password is required"
	}
	switch directory.Role(r.Role) {
	case "", directory.RoleStudent, directory.RoleAdmin:
	default:
		fields["role"] = "role must be either student or admin"
	}
	if r.Email != "" && !plausibleEmail(r.Email) {
		fields["email"] = "email is not valid"
	}
	if len(fields) > 0 {
		return ValidationError{Fields: fields}
	}
	return nil
}

// plausibleEmail is a sanity check, not RFC validation.
func plausibleEmail(e string) bool {
	at := strings.IndexByte(e, '@')
	if at <= 0 || at == len(e)-1 {
		return false
	}
	domain := e[at+1:]
	return !strings.Contains(domain, "@") && strings.Contains(domain, ".")
}
