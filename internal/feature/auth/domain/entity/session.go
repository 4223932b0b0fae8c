package entity

import "time"

// Session is one login. Access tokens carry its ID, and a request is only
// authenticated while the session it names is live.
type Session struct {
	ID        string // 64-character hex string
	UserID    uint
	UserAgent string
	IPAddress string
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time // nil while active
}

// IsExpired reports whether the session outlived ExpiresAt.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsRevoked reports whether the session was ended by logout.
func (s *Session) IsRevoked() bool {
	return s.RevokedAt != nil
}

// IsValid reports whether the session may still authenticate requests.
func (s *Session) IsValid() bool {
	return !s.IsExpired() && !s.IsRevoked()
}
