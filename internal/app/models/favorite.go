package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite marks a group as followed by a user.
type Favorite struct {
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	GroupID   uuid.UUID `json:"groupId" db:"group_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
