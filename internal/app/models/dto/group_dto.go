package dto

import (
	"time"

	"github.com/findyourpeers/peers/internal/app/models"
	"github.com/google/uuid"
)

// CreateGroupRequest carries the text fields of the create-group form.
// The photo travels as the multipart file "photo". Emptiness is checked by
// the service, on the trimmed values, so that all missing fields are
// reported as one condition.
type CreateGroupRequest struct {
	GroupName   string `form:"groupName" json:"groupName"`
	Topic       string `form:"topic" json:"topic"`
	Description string `form:"description" json:"description"`
	Category    string `form:"category" json:"category"`
}

// GroupFilterRequest represents directory filter parameters
type GroupFilterRequest struct {
	Category models.Category
	Page     int
	PageSize int
}

// GroupResponse represents a group as returned by the API
type GroupResponse struct {
	ID            uuid.UUID `json:"id"`
	GroupName     string    `json:"groupName"`
	Topic         string    `json:"topic"`
	Description   string    `json:"description"`
	Category      string    `json:"category" enums:"study,club,event"`
	CollegeName   string    `json:"collegeName"`
	CreatedBy     string    `json:"createdBy"`
	CreatorID     uuid.UUID `json:"creatorId"`
	DateCreated   time.Time `json:"dateCreated"`
	GroupPhotoURL string    `json:"groupPhotoUrl"`
}

// GroupListResponse represents one page of the group directory
type GroupListResponse struct {
	Groups []GroupResponse `json:"groups"`
	PaginationInfo
}

// FollowedGroupsResponse is the followed-groups listing, already filtered.
type FollowedGroupsResponse struct {
	Category string          `json:"category,omitempty"`
	Groups   []GroupResponse `json:"groups"`
}

// FavoriteStatusResponse reports whether the caller follows a group
type FavoriteStatusResponse struct {
	GroupID   uuid.UUID `json:"groupId"`
	Favorited bool      `json:"favorited"`
}

// FromGroup converts a models.Group to a GroupResponse
func FromGroup(g *models.Group) GroupResponse {
	return GroupResponse{
		ID:            g.ID,
		GroupName:     g.GroupName,
		Topic:         g.Topic,
		Description:   g.Description,
		Category:      string(g.Category),
		CollegeName:   g.CollegeName,
		CreatedBy:     g.CreatedBy,
		CreatorID:     g.CreatorID,
		DateCreated:   g.DateCreated,
		GroupPhotoURL: g.GroupPhotoURL,
	}
}

// FromGroups converts a slice, never returning nil
func FromGroups(groups []models.Group) []GroupResponse {
	out := make([]GroupResponse, 0, len(groups))
	for i := range groups {
		out = append(out, FromGroup(&groups[i]))
	}
	return out
}
