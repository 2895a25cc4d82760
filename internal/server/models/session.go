package models

import "time"

// Session is the payload carried inside the sealed cookie. The cookie itself
// is the source of truth; the server keeps no session table.
type Session struct {
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}
