package auth

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

type (
	// ValidationError reports malformed registration input, one message
	// per offending field. It is safe to surface verbatim to the client.
	ValidationError struct {
		Fields map[string]string
	}

	// HashingError wraps an RNG or KDF fault. It is never caused by user
	// input and callers should treat it as fatal for the request.
	HashingError struct {
		Cause error
	}
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("insufficient permissions")
)

func (v ValidationError) Error() string {
	fields := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fmt.Sprintf("invalid input: %v", strings.Join(fields, ", "))
}

func (h HashingError) Error() string {
	return fmt.Sprintf("credential hashing failed, cause %v", h.Cause)
}

func (h HashingError) Unwrap() error { return h.Cause }
