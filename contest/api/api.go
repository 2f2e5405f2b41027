package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/contestarena/arena/auth"
	authapi "github.com/contestarena/arena/auth/api"
	"github.com/contestarena/arena/contest"
	"github.com/contestarena/arena/directory"
	"github.com/contestarena/arena/internal/httpjson"
	"github.com/julienschmidt/httprouter"
)

type (
	handler struct {
		store *contest.Store
	}
)

// Routes registers the catalog and registration endpoints on router.
// Admin-only mutations go through realm.ProtectRole, student actions
// through realm.Protect; listing endpoints are public.
func Routes(router *httprouter.Router, store *contest.Store, realm *authapi.Realm) {
	h := handler{store: store}

	router.GET("/api/competitions", h.listCompetitions)
	router.GET("/api/competitions/:id", h.getCompetition)
	router.POST("/api/competitions", realm.ProtectRole(directory.RoleAdmin, h.createCompetition))
	router.PATCH("/api/competitions/:id", realm.ProtectRole(directory.RoleAdmin, h.updateCompetition))
	router.DELETE("/api/competitions/:id", realm.ProtectRole(directory.RoleAdmin, h.deleteCompetition))

	router.GET("/api/tracks", h.listTracks)
	router.GET("/api/tracks/:id", h.getTrack)
	router.POST("/api/tracks", realm.ProtectRole(directory.RoleAdmin, h.createTrack))

	router.GET("/api/registrations", realm.ProtectRole(directory.RoleAdmin, h.listRegistrations))
	router.GET("/api/registrations/check/:competitionId", realm.Protect(h.checkRegistration))
	router.POST("/api/registrations", realm.Protect(h.createRegistration))
	router.PATCH("/api/registrations/:id", realm.ProtectRole(directory.RoleAdmin, h.updateRegistrationStatus))

	router.GET("/api/timeline", h.timeline)
	router.GET("/api/universities", h.universities)
}

// === competitions ===

func (h handler) listCompetitions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	competitions, err := h.store.Competitions(r.Context())
	if err != nil {
		httpjson.Internal(w, r, err)
		return
	}
	if competitions == nil {
		competitions = []contest.Competition{}
	}
	httpjson.Write(w, r, http.StatusOK, competitions)
}

func (h handler) getCompetition(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := paramID(w, r, ps, "id")
	if !ok {
		return
	}
	competition, err := h.store.Competition(r.Context(), id)
	if errors.Is(err, contest.ErrNotFound) {
		httpjson.Message(w, r, http.StatusNotFound, "competition not found")
		return
	} else if err != nil {
		httpjson.Internal(w, r, err)
		return
	}
	httpjson.Write(w, r, http.StatusOK, competition)
}

func (h handler) createCompetition(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input contest.Competition
	if err := httpjson.Decode(r, &input); err != nil {
		httpjson.Message(w, r, http.StatusBadRequest, "invalid competition data")
		return
	}
	competition, err := h.store.CreateCompetition(r.Context(), input)
	if !h.writeCatalogError(w, r, err) {
		httpjson.Write(w, r, http.StatusCreated, competition)
	}
}

func (h handler) updateCompetition(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := paramID(w, r, ps, "id")
	if !ok {
		return
	}
	var input contest.Competition
	if err := httpjson.Decode(r, &input); err != nil {
		httpjson.Message(w, r, http.StatusBadRequest, "invalid competition data")
		return
	}
	competition, err := h.store.UpdateCompetition(r.Context(), id, input)
	if errors.Is(err, contest.ErrNotFound) {
		httpjson.Message(w, r, http.StatusNotFound, "competition not found")
		return
	}
	if !h.writeCatalogError(w, r, err) {
		httpjson.Write(w, r, http.StatusOK, competition)
	}
}

func (h handler) deleteCompetition(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := paramID(w, r, ps, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteCompetition(r.Context(), id); err != nil {
		httpjson.Internal(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// === tracks ===

func (h handler) listTracks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	tracks, err := h.store.Tracks(r.Context())
	if err != nil {
		httpjson.Internal(w, r, err)
		return
	}
	if tracks == nil {
		tracks = []contest.Track{}
	}
	httpjson.Write(w, r, http.StatusOK, tracks)
}

func (h handler) getTrack(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := paramID(w, r, ps, "id")
	if !ok {
		return
	}
	track, err := h.store.Track(r.Context(), id)
	if errors.Is(err, contest.ErrNotFound) {
		httpjson.Message(w, r, http.StatusNotFound, "track not found")
		return
	} else if err != nil {
		httpjson.Internal(w, r, err)
		return
	}
	httpjson.Write(w, r, http.StatusOK, track)
}

func (h handler) createTrack(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input contest.Track
	if err := httpjson.Decode(r, &input); err != nil {
		httpjson.Message(w, r, http.StatusBadRequest, "invalid track data")
		return
	}
	track, err := h.store.CreateTrack(r.Context(), input)
	if !h.writeCatalogError(w, r, err) {
		httpjson.Write(w, r, http.StatusCreated, track)
	}
}

// === registrations ===

func (h handler) listRegistrations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	registrations, err := h.store.Registrations(r.Context())
	if err != nil {
		httpjson.Internal(w, r, err)
		return
	}
	if registrations == nil {
		registrations = []contest.Registration{}
	}
	httpjson.Write(w, r, http.StatusOK, registrations)
}

func (h handler) checkRegistration(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	acct, err := auth.RequireAuthenticated(authapi.IdentityFrom(r.Context()))
	if err != nil {
		authapi.WriteGateError(w, r, err)
		return
	}
	competitionID, err := strconv.ParseInt(ps.ByName("competitionId"), 10, 64)
	if err != nil {
		httpjson.Message(w, r, http.StatusBadRequest, "invalid competition id")
		return
	}
	registered, err := h.store.IsRegistered(r.Context(), acct.ID, competitionID)
	if err != nil {
		httpjson.Internal(w, r, err)
		return
	}
	httpjson.Write(w, r, http.StatusOK, registered)
}

func (h handler) createRegistration(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	acct, err := auth.RequireAuthenticated(authapi.IdentityFrom(r.Context()))
	if err != nil {
		authapi.WriteGateError(w, r, err)
		return
	}
	var input contest.Registration
	if err := httpjson.Decode(r, &input); err != nil {
		httpjson.Message(w, r, http.StatusBadRequest, "invalid registration data")
		return
	}
	// Students sign up themselves, never each other.
	if input.UserID != acct.ID {
		httpjson.Message(w, r, http.StatusForbidden, "you can only register yourself")
		return
	}
	registration, err := h.store.CreateRegistration(r.Context(), input)
	if errors.Is(err, contest.ErrAlreadyRegistered) {
		httpjson.Message(w, r, http.StatusConflict, "already registered for this competition")
		return
	}
	if !h.writeCatalogError(w, r, err) {
		httpjson.Write(w, r, http.StatusCreated, registration)
	}
}

func (h handler) updateRegistrationStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := paramID(w, r, ps, "id")
	if !ok {
		return
	}
	var input struct {
		Status string `json:"status"`
	}
	if err := httpjson.Decode(r, &input); err != nil {
		httpjson.Message(w, r, http.StatusBadRequest, "invalid status data")
		return
	}
	registration, err := h.store.SetRegistrationStatus(r.Context(), id, input.Status)
	if errors.Is(err, contest.ErrNotFound) {
		httpjson.Message(w, r, http.StatusNotFound, "registration not found")
		return
	}
	if !h.writeCatalogError(w, r, err) {
		httpjson.Write(w, r, http.StatusOK, registration)
	}
}

// === static data ===

func (h handler) timeline(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	httpjson.Write(w, r, http.StatusOK, contest.DefaultTimeline())
}

func (h handler) universities(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	httpjson.Write(w, r, http.StatusOK, contest.Universities())
}

// writeCatalogError handles the error tail shared by the mutating
// handlers. It reports whether a response was written.
func (h handler) writeCatalogError(w http.ResponseWriter, r *http.Request, err error) bool {
	var invalid contest.InvalidInput
	switch {
	case err == nil:
		return false
	case errors.As(err, &invalid):
		httpjson.FieldErrors(w, r, "invalid input", invalid.Fields)
	case errors.Is(err, contest.ErrUnknownTrack):
		httpjson.Message(w, r, http.StatusBadRequest, "track does not exist")
	default:
		httpjson.Internal(w, r, err)
	}
	return true
}

func paramID(w http.ResponseWriter, r *http.Request, ps httprouter.Params, name string) (int64, bool) {
	id, err := strconv.ParseInt(ps.ByName(name), 10, 64)
	if err != nil || id <= 0 {
		httpjson.Message(w, r, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
