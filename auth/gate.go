package auth

import "github.com/contestarena/arena/directory"

// RequireAuthenticated unwraps id or fails with ErrUnauthenticated.
func RequireAuthenticated(id Identity) (directory.Account, error) {
	acct, ok := id.Account()
	if !ok {
		return directory.Account{}, ErrUnauthenticated
	}
	return acct, nil
}

// RequireRole unwraps id and checks the role. Authentication is always
// checked first, so an anonymous caller observes ErrUnauthenticated and
// never learns that a role gate exists behind it.
func RequireRole(id Identity, role directory.Role) (directory.Account, error) {
	acct, err := RequireAuthenticated(id)
	if err != nil {
		return directory.Account{}, err
	}
	if acct.Role != role {
		return directory.Account{}, ErrForbidden
	}
	return acct, nil
}
