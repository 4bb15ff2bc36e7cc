package transport

import "github.com/google/uuid"

// Session identifies one host connection for the lifetime of its
// process, so that log lines produced while handling its commands can
// be correlated after the fact without the engine itself knowing
// anything about connections or hosts.
type Session struct {
	id uuid.UUID
}

// NewSession generates a fresh session token.
func NewSession() Session {
	return Session{id: uuid.New()}
}

// String returns the session's canonical UUID form.
func (s Session) String() string {
	return s.id.String()
}

// ParseSession parses a previously issued session token, e.g. one a host
// reconnecting after a dropped socket wants to resume logging under.
func ParseSession(s string) (Session, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return Session{}, err
	}
	return Session{id: id}, nil
}
