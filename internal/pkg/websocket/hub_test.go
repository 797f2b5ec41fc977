package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/findyourpeers/peers/internal/app/models/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gws "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type knownGroups map[uuid.UUID]bool

func (k knownGroups) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return k[id], nil
}

func startServer(t *testing.T, groupID uuid.UUID) (*Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub(zerolog.Nop())
	go hub.Run(ctx)

	handler := NewHandler(hub, knownGroups{groupID: true}, zerolog.Nop())
	r := gin.New()
	r.GET("/groups/:id/posts/ws", func(c *gin.Context) {
		c.Set("userID", uuid.New())
		c.Next()
	}, handler.HandleConnection)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, srv
}

func wsURL(srv *httptest.Server, groupID uuid.UUID) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/groups/" + groupID.String() + "/posts/ws"
}

func TestPublishReachesGroupSubscribers(t *testing.T) {
	groupID := uuid.New()
	hub, srv := startServer(t, groupID)

	conn, _, err := gws.DefaultDialer.Dial(wsURL(srv, groupID), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount(groupID) == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Publish(uuid.New(), dto.EventPostCreated, map[string]string{"postText": "other group"})
	hub.Publish(groupID, dto.EventPostCreated, map[string]string{"postText": "hello"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event struct {
		Type    string            `json:"type"`
		GroupID uuid.UUID         `json:"groupId"`
		Data    map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, dto.EventPostCreated, event.Type)
	assert.Equal(t, groupID, event.GroupID)
	assert.Equal(t, "hello", event.Data["postText"])
}

func TestClientDisconnectUnregisters(t *testing.T) {
	groupID := uuid.New()
	hub, srv := startServer(t, groupID)

	conn, _, err := gws.DefaultDialer.Dial(wsURL(srv, groupID), nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.ClientCount(groupID) == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.ClientCount(groupID) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestUnknownGroupRejected(t *testing.T) {
	_, srv := startServer(t, uuid.New())

	_, resp, err := gws.DefaultDialer.Dial(wsURL(srv, uuid.New()), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPublishAfterStopDoesNotBlock(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	done := make(chan struct{})
	go func() {
		for i := 0; i < 300; i++ {
			hub.Publish(uuid.New(), dto.EventPostCreated, nil)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked after hub stopped")
	}
}
