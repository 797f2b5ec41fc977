package models

import (
	"time"

	"github.com/google/uuid"
)

// Group is an interest-based community: a study group, a club or an event.
// Groups are never modified after creation.
type Group struct {
	ID            uuid.UUID `json:"id" db:"id"`
	GroupName     string    `json:"groupName" db:"group_name"`
	Topic         string    `json:"topic" db:"topic"`
	Description   string    `json:"description" db:"description"`
	Category      Category  `json:"category" db:"category"`
	CollegeName   string    `json:"collegeName" db:"college_name"`
	CreatedBy     string    `json:"createdBy" db:"created_by"`
	CreatorID     uuid.UUID `json:"creatorId" db:"creator_id"`
	DateCreated   time.Time `json:"dateCreated" db:"date_created"`
	GroupPhotoURL string    `json:"groupPhotoUrl" db:"group_photo_url"`
}

// FilterByCategory returns the groups whose category equals c, preserving
// order. The input slice is left untouched. An empty category returns a copy
// of the full set.
func FilterByCategory(groups []Group, c Category) []Group {
	filtered := make([]Group, 0, len(groups))
	for _, g := range groups {
		if c == "" || g.Category == c {
			filtered = append(filtered, g)
		}
	}
	return filtered
}
