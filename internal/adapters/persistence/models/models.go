package models

import (
	"time"

	"gorm.io/gorm"
)

// SessionRecord represents the sessions table: one row per browser
// session, holding only the sealed upstream token. User data is never
// persisted; it is revalidated against the API on every resume.
type SessionRecord struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	SealedToken []byte    `gorm:"type:varbinary(512);not null" json:"-"`
	ExpiresAt   time.Time `gorm:"index;not null" json:"expires_at"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SessionRecord) TableName() string {
	return "sessions"
}

// IsExpired reports whether the record is past its expiry.
func (s *SessionRecord) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// AutoMigrate creates or updates the portal's tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&SessionRecord{},
	)
}
