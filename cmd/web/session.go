package main

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/crucial707/qa-forum/internal/client"
)

// SessionStore keeps the logged-in user's session between requests.
type SessionStore interface {
	Load(r *http.Request) (client.Session, bool)
	Save(w http.ResponseWriter, s client.Session) error
	Clear(w http.ResponseWriter)
}

// cookieStore holds the session as base64 JSON in a cookie. The value is not
// encrypted; HttpOnly keeps scripts away from the token.
type cookieStore struct {
	name   string
	secure bool
	ttl    time.Duration
}

const sessionCookie = "forum_session"

func newCookieStore(secure bool, ttl time.Duration) *cookieStore {
	return &cookieStore{name: sessionCookie, secure: secure, ttl: ttl}
}

func (c *cookieStore) Load(r *http.Request) (client.Session, bool) {
	cookie, err := r.Cookie(c.name)
	if err != nil || cookie.Value == "" {
		return client.Session{}, false
	}
	data, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return client.Session{}, false
	}
	var s client.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return client.Session{}, false
	}
	return s, s.Valid()
}

func (c *cookieStore) Save(w http.ResponseWriter, s client.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		MaxAge:   int(c.ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (c *cookieStore) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
