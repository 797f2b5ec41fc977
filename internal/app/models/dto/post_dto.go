package dto

import (
	"time"

	"github.com/findyourpeers/peers/internal/app/models"
	"github.com/google/uuid"
)

// EventPostCreated is the live feed event carrying a PostResponse for every
// new post.
const EventPostCreated = "post.created"

// CreatePostRequest represents a new comment on a group. Length is checked
// by the service after trimming.
type CreatePostRequest struct {
	PostText string `json:"postText"`
}

// PostResponse represents a comment as returned by the API
type PostResponse struct {
	ID         uuid.UUID `json:"id"`
	GroupID    uuid.UUID `json:"groupId"`
	UserName   string    `json:"userName"`
	UserID     uuid.UUID `json:"userId"`
	TimePosted time.Time `json:"timePosted"`
	PostText   string    `json:"postText"`
}

// PostListResponse lists the comments of one group, oldest first
type PostListResponse struct {
	GroupID uuid.UUID      `json:"groupId"`
	Posts   []PostResponse `json:"posts"`
}

// FromPost converts a models.Post to a PostResponse
func FromPost(p *models.Post) PostResponse {
	return PostResponse{
		ID:         p.ID,
		GroupID:    p.GroupID,
		UserName:   p.UserName,
		UserID:     p.UserID,
		TimePosted: p.TimePosted,
		PostText:   p.PostText,
	}
}

// FromPosts converts a slice, never returning nil
func FromPosts(posts []models.Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, FromPost(&posts[i]))
	}
	return out
}
