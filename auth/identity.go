package auth

import "github.com/contestarena/arena/directory"

// Identity is the resolved caller of a request: either Anonymous or a
// concrete account. Consumers must unwrap via Account, which forces them
// to handle the anonymous case instead of null-checking a pointer.
type Identity struct {
	acct *directory.Account
}

func Anonymous() Identity { return Identity{} }

// AuthenticatedAs binds an identity to acct. The digest is dropped on the
// way in so it never circulates on request contexts.
func AuthenticatedAs(acct directory.Account) Identity {
	acct.Digest = ""
	return Identity{acct: &acct}
}

func (id Identity) Account() (directory.Account, bool) {
	if id.acct == nil {
		return directory.Account{}, false
	}
	return *id.acct, true
}
