// Package auth implements the credential and session core of the platform:
// password hashing, login/registration, session-backed identity and
// role checks.
//
// Passwords are never stored. At registration the plaintext is expanded
// with scrypt and a random per-account salt into a 64 byte digest, and
// only the serialized digest ("<hex digest>.<hex salt>") ever reaches the
// user directory. Verification re-derives the digest from the candidate
// password and compares in constant time, so neither a stored record nor
// the timing of a failed login gives an attacker a head start.
//
// Identity is carried by server-side sessions: login hands the client an
// opaque random token, and the token maps to an account id inside a
// SessionStore until it expires or the user logs out. The service itself
// holds no session state, which keeps it trivially swappable in tests and
// lets deployments pick a different store.
//
// A deliberate property of Login is that "no such user" and "wrong
// password" are indistinguishable from the outside: both return
// ErrInvalidCredentials, and the unknown-user path still burns a scrypt
// derivation against a decoy digest so the two cases cost about the same.
package auth
