package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // Opaque identifiers
	"gorm.io/gorm"           // GORM ORM library
)

// User Model
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`               // Primary key (UUID)
	Name      string    `gorm:"not null" json:"name"`                       // Display name
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"` // Unique, case-sensitive email
	Password  string    `gorm:"not null" json:"-"`                          // bcrypt credential, never serialized
	CreatedAt time.Time `json:"createdAt"`                                  // Registration time
}

// BeforeCreate assigns a UUID when the caller did not set one
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Profile is the public view of a user returned by /api/user/me
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Profile returns the public fields of the user
func (u User) Profile() Profile {
	return Profile{ID: u.ID, Name: u.Name, Email: u.Email}
}
