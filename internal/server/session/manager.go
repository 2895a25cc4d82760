// Package session manages the sealed-cookie session: the cookie itself is
// the only session state, so there is nothing server-side to revoke or
// garbage-collect.
package session

import (
	"net/http"
	"time"

	"github.com/sanjaympqwer/TASK-MASTER/internal/common"
	"github.com/sanjaympqwer/TASK-MASTER/internal/cryptox"
	"github.com/sanjaympqwer/TASK-MASTER/internal/server/config"
	"github.com/sanjaympqwer/TASK-MASTER/internal/server/models"
)

// Manager seals and opens session cookies with a key derived from the
// configured auth secret.
type Manager struct {
	key      []byte
	validity time.Duration
	secure   bool
}

// NewManager builds a Manager from server config. The cookie carries the
// Secure flag only in production so local HTTP development keeps working.
func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		key:      cryptox.DeriveKey(cfg.AuthSecret),
		validity: cfg.SessionValidityDuration,
		secure:   cfg.IsProduction(),
	}
}

// Create seals a fresh session for userID and sets it as the session cookie.
func (m *Manager) Create(w http.ResponseWriter, userID string) error {
	sess := models.Session{
		UserID:    userID,
		ExpiresAt: time.Now().Add(m.validity),
	}

	token, err := cryptox.Seal(sess, m.key)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   m.secure,
		Expires:  sess.ExpiresAt,
	})
	return nil
}

// Read returns the session carried by the request. An absent, malformed, or
// tampered cookie is an anonymous request, reported as (nil, nil); only an
// expired but otherwise valid session is an error, so the boundary can clear
// the stale cookie and redirect to login.
func (m *Manager) Read(r *http.Request) (*models.Session, error) {
	c, err := r.Cookie(common.SessionCookieName)
	if err != nil || c.Value == "" {
		return nil, nil
	}

	var sess models.Session
	if err := cryptox.Open(c.Value, m.key, &sess); err != nil {
		return nil, nil
	}
	if sess.UserID == "" {
		return nil, nil
	}
	if time.Now().After(sess.ExpiresAt) {
		return nil, common.ErrorSessionExpired
	}
	return &sess, nil
}

// Destroy clears the session cookie. Calling it without a live session is
// not an error.
func (m *Manager) Destroy(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   m.secure,
		MaxAge:   -1,
	})
}
