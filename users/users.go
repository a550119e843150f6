package users

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is the authenticated identity record (human or anonymous). Business
// entities reference it by ID only; this package never hard-deletes a user.
type User struct {
	ID           string     `json:"id,omitempty"`       // Unique identifier for the user
	Username     string     `json:"username,omitempty"` // Unique username
	Email        string     `json:"email,omitempty"`    // Unique email address
	PasswordHash string     `json:"-"`                  // Hashed password - never serialize
	IsAnonymous  bool       `json:"is_anonymous,omitempty"`
	CreatedAt    time.Time  `json:"created_at,omitempty"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"` // Nil until the first login
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// dummyHash is a throwaway bcrypt hash compared against when a login
// identifier matches no user, so an unknown identifier costs the same as a
// wrong password and cannot be distinguished by timing.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// BurnPasswordCheck runs a bcrypt comparison that always fails.
func BurnPasswordCheck(password string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
}
