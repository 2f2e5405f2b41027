package api

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"
)

type (
	// CookieCodec writes and reads the session cookie. The cookie value
	// is "<token>.<signature>" where the signature is an HMAC-SHA256 of
	// the token under the session secret, so a tampered or forged token
	// is rejected before it ever reaches the session store.
	CookieCodec struct {
		name   string
		secret []byte
		secure bool
		ttl    time.Duration
	}
)

// NewCookieCodec configures the session cookie. secure should be true
// whenever the deployment terminates TLS (the production flag).
func NewCookieCodec(name string, secret []byte, secure bool, ttl time.Duration) CookieCodec {
	return CookieCodec{name: name, secret: secret, secure: secure, ttl: ttl}
}

func (c CookieCodec) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    token + "." + c.sign(token),
		Path:     "/",
		MaxAge:   int(c.ttl.Seconds()),
		Expires:  time.Now().Add(c.ttl),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c CookieCodec) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read extracts the session token from the request. A missing cookie, a
// malformed value or a bad signature all yield the empty token: the
// caller treats every one of those as "no session".
func (c CookieCodec) Read(r *http.Request) string {
	cookie, err := r.Cookie(c.name)
	if err != nil || cookie.Value == "" {
		return ""
	}
	i := strings.LastIndexByte(cookie.Value, '.')
	if i <= 0 || i == len(cookie.Value)-1 {
		return ""
	}
	token, sig := cookie.Value[:i], cookie.Value[i+1:]
	if !hmac.Equal([]byte(sig), []byte(c.sign(token))) {
		return ""
	}
	return token
}

func (c CookieCodec) sign(token string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(token))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
