package models

import "time"

// Settings holds a user's AI-provider and connector configuration.
// Both maps are persisted exactly as the client sent them.
type Settings struct {
	AI         map[string]string `json:"ai"`
	Connectors map[string]string `json:"connectors"`
}

// NewSettings returns an empty settings block with both maps allocated.
func NewSettings() Settings {
	return Settings{
		AI:         make(map[string]string),
		Connectors: make(map[string]string),
	}
}

// User represents a registered account. Password holds the bcrypt hash and
// is stripped before the record crosses the API boundary (see Sanitized).
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"password,omitempty"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar,omitempty"`
	Token     string    `json:"token,omitempty"`
	Settings  Settings  `json:"settings"`
	CreatedAt time.Time `json:"createdAt"`
}

// Sanitized returns a copy of the user safe to return to clients: the
// password hash is dropped (omitempty elides the empty field).
func (u User) Sanitized() User {
	u.Password = ""
	return u
}
