package api

import (
	"errors"
	"net/http"

	"github.com/contestarena/arena/auth"
	"github.com/contestarena/arena/directory"
	"github.com/contestarena/arena/internal/httpjson"
	"github.com/julienschmidt/httprouter"
)

type (
	handler struct {
		svc     *auth.Service
		cookies CookieCodec
	}
)

// Routes registers the authentication endpoints on router.
func Routes(router *httprouter.Router, svc *auth.Service, cookies CookieCodec) {
	h := handler{svc: svc, cookies: cookies}
	router.POST("/api/register", h.register)
	router.POST("/api/login", h.login)
	router.POST("/api/logout", h.logout)
	router.GET("/api/user", h.currentUser)
}

func (h handler) register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req auth.RegisterRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Message(w, r, http.StatusBadRequest, "invalid registration data")
		return
	}
	acct, token, err := h.svc.Register(r.Context(), req)
	var invalid auth.ValidationError
	switch {
	case errors.As(err, &invalid):
		httpjson.FieldErrors(w, r, "invalid registration data", invalid.Fields)
		return
	case errors.Is(err, directory.ErrDuplicateUsername):
		httpjson.Message(w, r, http.StatusBadRequest, "username already exists")
		return
	case err != nil:
		httpjson.Internal(w, r, err)
		return
	}
	h.cookies.Set(w, token)
	httpjson.Write(w, r, http.StatusCreated, acct)
}

func (h handler) login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Message(w, r, http.StatusBadRequest, "invalid login data")
		return
	}
	acct, token, err := h.svc.Login(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		// One message for unknown user and wrong password alike.
		httpjson.Message(w, r, http.StatusUnauthorized, "invalid username or password")
		return
	case err != nil:
		httpjson.Internal(w, r, err)
		return
	}
	h.cookies.Set(w, token)
	httpjson.Write(w, r, http.StatusOK, acct)
}

func (h handler) logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := h.svc.Logout(r.Context(), h.cookies.Read(r)); err != nil {
		h.cookies.Clear(w)
		httpjson.Internal(w, r, err)
		return
	}
	h.cookies.Clear(w)
	httpjson.Message(w, r, http.StatusOK, "logged out")
}

func (h handler) currentUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	acct, err := auth.RequireAuthenticated(IdentityFrom(r.Context()))
	if err != nil {
		WriteGateError(w, r, err)
		return
	}
	httpjson.Write(w, r, http.StatusOK, acct)
}
