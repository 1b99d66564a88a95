package models

import "time"

// EmailVerification is the per-email ledger entry for the registration gate:
// a bcrypt hash of the last 6-digit code sent, and whether the address has
// been proven. Re-sending a code replaces the stored hash in place.
type EmailVerification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	CodeHash  string    `gorm:"not null" json:"-"`
	Validated bool      `gorm:"not null;default:false" json:"isValidated"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
