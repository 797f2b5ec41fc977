package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/findyourpeers/peers/internal/app/models/dto"
	"github.com/gorilla/websocket"
)

// feedEvent is one frame of the live post feed.
type feedEvent struct {
	Type      string           `json:"type"`
	GroupID   string           `json:"groupId"`
	Data      dto.PostResponse `json:"data"`
	Timestamp time.Time        `json:"timestamp"`
}

// feedURL turns the API base URL into the group's WebSocket address.
func (c *Client) feedURL(groupID string) (string, error) {
	u, err := url.Parse(c.baseURL + "/api/v1" + postsPath(groupID) + "/ws")
	if err != nil {
		return "", fmt.Errorf("error parsing feed URL: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	return u.String(), nil
}

// WatchPosts streams new posts of a group to onPost until ctx is cancelled
// or the server closes the feed. A cancelled ctx is not an error.
func (c *Client) WatchPosts(ctx context.Context, groupID string, onPost func(dto.PostResponse)) error {
	target, err := c.feedURL(groupID)
	if err != nil {
		return err
	}

	header := http.Header{}
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}

	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}
	conn, resp, err := dialer.DialContext(ctx, target, header)
	if err != nil {
		if resp != nil {
			defer resp.Body.Close()
			return &APIError{Status: resp.StatusCode, Message: "feed handshake rejected: " + strings.ToLower(http.StatusText(resp.StatusCode))}
		}
		return fmt.Errorf("error connecting to feed: %w", err)
	}
	defer conn.Close()

	// Unblock ReadJSON when the caller gives up.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	for {
		var event feedEvent
		if err := conn.ReadJSON(&event); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("error reading feed: %w", err)
		}
		if event.Type == dto.EventPostCreated {
			onPost(event.Data)
		}
	}
}
