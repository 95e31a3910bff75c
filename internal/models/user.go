package models

import (
	"golang.org/x/crypto/bcrypt"
)

// Role values accepted for User.Role.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents an authenticated user of the application.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"uniqueIndex;size:120;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never exposed
	Role     string `gorm:"size:20;not null;default:'user'" json:"role"`
}

// TableName keeps the table name used by the legacy schema.
func (User) TableName() string { return "usuarios" }

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// SetPassword hashes and stores the raw password.
func (u *User) SetPassword(raw string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword verifies a raw password against the stored hash.
func (u *User) CheckPassword(raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(raw)) == nil
}
