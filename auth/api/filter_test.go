package api

import (
	"net/http"
	"testing"

	"github.com/contestarena/arena/directory"
	"github.com/julienschmidt/httprouter"
	"github.com/steinfletcher/apitest"
)

func TestRealmGates(t *testing.T) {
	appHandler, realm := acquireApp(t)
	studentCookie := registerAndGetCookie(t, appHandler, `{"username":"student1","password":"s3cret!"}`)
	adminCookie := registerAndGetCookie(t, appHandler, `{"username":"admin1","password":"s3cret!","role":"admin"}`)

	// Probe routes behind the same realm the real app uses.
	router := httprouter.New()
	ok := func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	}
	router.GET("/protected", realm.Protect(ok))
	router.GET("/admin-only", realm.ProtectRole(directory.RoleAdmin, ok))
	gated := realm.Identify(router)

	// Anonymous callers get a 401 from both gates: the role requirement
	// is never revealed before authentication.
	apitest.New().Handler(gated).Get("/protected").
		Expect(t).Status(http.StatusUnauthorized).End()
	apitest.New().Handler(gated).Get("/admin-only").
		Expect(t).Status(http.StatusUnauthorized).End()

	apitest.New().Handler(gated).Get("/protected").
		Cookie(testCookieName, studentCookie).
		Expect(t).Status(http.StatusOK).End()
	apitest.New().Handler(gated).Get("/admin-only").
		Cookie(testCookieName, studentCookie).
		Expect(t).Status(http.StatusForbidden).End()

	apitest.New().Handler(gated).Get("/admin-only").
		Cookie(testCookieName, adminCookie).
		Expect(t).Status(http.StatusOK).End()
}
