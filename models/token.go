package models

import "time"

// PasswordResetToken is a single-use credential bound to an email address.
// Redeemable only while used_at is null and expires_at is in the future.
type PasswordResetToken struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Token     string     `json:"token" gorm:"uniqueIndex;not null"`
	Email     string     `json:"email" gorm:"index;not null"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"not null"`
	UsedAt    *time.Time `json:"used_at"`
	CreatedAt time.Time  `json:"created_at"`
}
