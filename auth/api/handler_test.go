package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/contestarena/arena/auth"
	"github.com/contestarena/arena/directory"
	"github.com/julienschmidt/httprouter"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/stretchr/testify/require"
)

const testCookieName = "arena_session"

func acquireApp(t *testing.T) (http.Handler, *Realm) {
	t.Helper()
	dir := directory.NewInMemory()
	sessions, err := auth.InMemorySessionStore(time.Hour)
	require.NoError(t, err)
	svc, err := auth.NewService(dir, sessions)
	require.NoError(t, err)
	cookies := NewCookieCodec(testCookieName, []byte("test-secret"), false, time.Hour)
	realm := NewRealm(svc, cookies)
	router := httprouter.New()
	Routes(router, svc, cookies)
	return realm.Identify(router), realm
}

// registerAndGetCookie runs a registration and returns the signed
// session cookie value for follow-up requests.
func registerAndGetCookie(t *testing.T, handler http.Handler, body string) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookieName {
			return c.Value
		}
	}
	t.Fatal("session cookie not set on registration")
	return ""
}

func TestRegisterEndpoint(t *testing.T) {
	handler, _ := acquireApp(t)
	apitest.New().
		Handler(handler).
		Post("/api/register").
		JSON(`{"username":"alice","password":"s3cret!","university":"Fudan University"}`).
		Expect(t).
		Status(http.StatusCreated).
		CookiePresent(testCookieName).
		Assert(jsonpath.Equal(`$.username`, "alice")).
		Assert(jsonpath.Equal(`$.role`, "student")).
		Assert(jsonpath.NotPresent(`$.digest`)).
		Assert(jsonpath.NotPresent(`$.password`)).
		End()
}

func TestRegisterValidationErrors(t *testing.T) {
	handler, _ := acquireApp(t)
	apitest.New().
		Handler(handler).
		Post("/api/register").
		JSON(`{"username":"","password":""}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal(`$.message`, "invalid registration data")).
		Assert(jsonpath.Present(`$.errors.username`)).
		Assert(jsonpath.Present(`$.errors.password`)).
		End()
}

func TestRegisterToleratesUnknownFields(t *testing.T) {
	handler, _ := acquireApp(t)
	// Clients echo extra keys the form collects; they are ignored, not
	// a reason to reject the registration.
	apitest.New().
		Handler(handler).
		Post("/api/register").
		JSON(`{"username":"grace","password":"s3cret!","confirmPassword":"s3cret!"}`).
		Expect(t).
		Status(http.StatusCreated).
		CookiePresent(testCookieName).
		Assert(jsonpath.Equal(`$.username`, "grace")).
		End()
}

func TestRegisterDuplicateUsername(t *testing.T) {
	handler, _ := acquireApp(t)
	registerAndGetCookie(t, handler, `{"username":"bob","password":"s3cret!"}`)
	apitest.New().
		Handler(handler).
		Post("/api/register").
		JSON(`{"username":"bob","password":"different"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal(`$.message`, "username already exists")).
		End()
}

func TestLoginUnifiedFailureResponse(t *testing.T) {
	handler, _ := acquireApp(t)
	registerAndGetCookie(t, handler, `{"username":"carol","password":"right-pass"}`)

	// Unknown user and wrong password must be indistinguishable.
	for _, body := range []string{
		`{"username":"nobody","password":"whatever"}`,
		`{"username":"carol","password":"wrong-pass"}`,
	} {
		apitest.New().
			Handler(handler).
			Post("/api/login").
			JSON(body).
			Expect(t).
			Status(http.StatusUnauthorized).
			Assert(jsonpath.Equal(`$.message`, "invalid username or password")).
			End()
	}
}

func TestLoginSuccess(t *testing.T) {
	handler, _ := acquireApp(t)
	registerAndGetCookie(t, handler, `{"username":"dave","password":"s3cret!"}`)
	apitest.New().
		Handler(handler).
		Post("/api/login").
		JSON(`{"username":"dave","password":"s3cret!"}`).
		Expect(t).
		Status(http.StatusOK).
		CookiePresent(testCookieName).
		Assert(jsonpath.Equal(`$.username`, "dave")).
		Assert(jsonpath.NotPresent(`$.digest`)).
		End()
}

func TestWhoamiLifecycle(t *testing.T) {
	handler, _ := acquireApp(t)
	cookie := registerAndGetCookie(t, handler, `{"username":"erin","password":"s3cret!"}`)

	apitest.New().
		Handler(handler).
		Get("/api/user").
		Cookie(testCookieName, cookie).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.username`, "erin")).
		End()

	apitest.New().
		Handler(handler).
		Post("/api/logout").
		Cookie(testCookieName, cookie).
		Expect(t).
		Status(http.StatusOK).
		End()

	apitest.New().
		Handler(handler).
		Get("/api/user").
		Cookie(testCookieName, cookie).
		Expect(t).
		Status(http.StatusUnauthorized).
		End()

	// A second logout with the same (now dead) session is still a 200.
	apitest.New().
		Handler(handler).
		Post("/api/logout").
		Cookie(testCookieName, cookie).
		Expect(t).
		Status(http.StatusOK).
		End()
}

func TestWhoamiAnonymous(t *testing.T) {
	handler, _ := acquireApp(t)
	apitest.New().
		Handler(handler).
		Get("/api/user").
		Expect(t).
		Status(http.StatusUnauthorized).
		End()
}

func TestTamperedCookieIsAnonymous(t *testing.T) {
	handler, _ := acquireApp(t)
	cookie := registerAndGetCookie(t, handler, `{"username":"frank","password":"s3cret!"}`)

	// Prepend a byte to the token part, keeping the signature: the HMAC
	// check must reject the cookie and the request runs anonymous.
	tampered := "X" + cookie
	apitest.New().
		Handler(handler).
		Get("/api/user").
		Cookie(testCookieName, tampered).
		Expect(t).
		Status(http.StatusUnauthorized).
		End()
}

func TestCookieCodecRoundTrip(t *testing.T) {
	codec := NewCookieCodec(testCookieName, []byte("another-secret"), false, time.Hour)
	rec := httptest.NewRecorder()
	codec.Set(rec, "some-token")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	require.Equal(t, "some-token", codec.Read(req))

	// A codec with a different secret rejects the same cookie.
	other := NewCookieCodec(testCookieName, []byte("rotated"), false, time.Hour)
	require.Empty(t, other.Read(req))
}
