package models

import "time"

// Session is a server-side login session. Tokens carry the session id so a
// row deletion revokes the login even while the token itself is unexpired.
type Session struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Role      UserRole  `json:"role" gorm:"size:16"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
