package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is a comment attached to exactly one group. Posts are append-only.
type Post struct {
	ID         uuid.UUID `json:"id" db:"id"`
	GroupID    uuid.UUID `json:"groupId" db:"group_id"`
	UserName   string    `json:"userName" db:"user_name"`
	UserID     uuid.UUID `json:"userId" db:"user_id"`
	TimePosted time.Time `json:"timePosted" db:"time_posted"`
	PostText   string    `json:"postText" db:"post_text"`
}
