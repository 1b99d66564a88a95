package models

import (
	"time"

	"gorm.io/gorm"
)

// User type ids. Self-registration always gets UserTypeRegular.
const (
	UserTypeAdmin   uint = 1
	UserTypeRegular uint = 2
)

// User represents a platform user.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	Surname1     string         `gorm:"column:surname_1;not null" json:"surname_1"`
	Surname2     string         `gorm:"column:surname_2" json:"surname_2,omitempty"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	Telephone    string         `gorm:"not null" json:"telephone"`
	PasswordHash string         `gorm:"not null" json:"-"`
	UserTypeID   uint           `gorm:"not null;default:2" json:"userTypeId"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// UserUpdate carries a partial profile update. Nil fields are left untouched.
// ID is the only required field; Password is plaintext and hashed by the
// service before it reaches storage.
type UserUpdate struct {
	ID        uint
	Name      *string
	Surname1  *string
	Surname2  *string
	Telephone *string
	Password  *string
}

// Empty reports whether the update carries no recognized field.
func (u UserUpdate) Empty() bool {
	return u.Name == nil && u.Surname1 == nil && u.Surname2 == nil &&
		u.Telephone == nil && u.Password == nil
}
