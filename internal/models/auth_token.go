package models

import "time"

// AuthToken is a single-use admin login token sent by email.
type AuthToken struct {
	Email     string    `bson:"email" json:"email" gorm:"index;not null"`
	Token     string    `bson:"token" json:"token" gorm:"primaryKey;size:64"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at" gorm:"index"`
	IsUsed    bool      `bson:"is_used" json:"is_used"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

func (t *AuthToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
