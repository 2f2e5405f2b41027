package api

import (
	"errors"
	"net/http"

	"github.com/contestarena/arena/auth"
	"github.com/contestarena/arena/directory"
	"github.com/contestarena/arena/internal/httpjson"
	"github.com/contestarena/arena/internal/logutil"
	"github.com/julienschmidt/httprouter"
)

type (
	// Realm resolves the session cookie into an Identity once per
	// request and offers gates that protected handlers wrap themselves
	// with. Gate ordering is fixed: authentication is always checked
	// before role, so anonymous callers always see a 401.
	Realm struct {
		svc     *auth.Service
		cookies CookieCodec
	}
)

func NewRealm(svc *auth.Service, cookies CookieCodec) *Realm {
	return &Realm{svc: svc, cookies: cookies}
}

// Identify attaches the resolved identity to the request context. It
// never rejects a request: public routes run with Anonymous.
func (re *Realm) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := re.svc.CurrentUser(r.Context(), re.cookies.Read(r))
		if err != nil {
			log := logutil.ForRequest(r)
			log.Error().Err(err).Msg("Unable to resolve session")
			httpjson.Message(w, r, http.StatusInternalServerError, "internal error")
			return
		}
		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), id)))
	})
}

// Protect rejects anonymous callers with a 401 before sensitive runs.
func (re *Realm) Protect(sensitive httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if _, err := auth.RequireAuthenticated(IdentityFrom(r.Context())); err != nil {
			WriteGateError(w, r, err)
			return
		}
		sensitive(w, r, ps)
	}
}

// ProtectRole rejects anonymous callers with a 401 and authenticated
// callers of the wrong role with a 403.
func (re *Realm) ProtectRole(role directory.Role, sensitive httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if _, err := auth.RequireRole(IdentityFrom(r.Context()), role); err != nil {
			WriteGateError(w, r, err)
			return
		}
		sensitive(w, r, ps)
	}
}

// WriteGateError translates gate failures into their status codes with
// deliberately generic messages.
func WriteGateError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		httpjson.Message(w, r, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, auth.ErrForbidden):
		httpjson.Message(w, r, http.StatusForbidden, "insufficient permissions")
	default:
		httpjson.Internal(w, r, err)
	}
}
