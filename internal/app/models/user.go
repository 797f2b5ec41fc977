package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is an account that creates groups, favorites them and posts comments.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"fullName" db:"full_name"`
	CollegeName  string    `json:"collegeName" db:"college_name"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
