package websocket

import (
	"context"
	"net/http"

	"github.com/findyourpeers/peers/internal/app/models/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// GroupChecker reports whether a group exists.
type GroupChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Handler for WebSocket connections
type Handler struct {
	hub    *Hub
	groups GroupChecker
	logger zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, groups GroupChecker, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:    hub,
		groups: groups,
		logger: logger,
	}
}

// HandleConnection godoc
// @Summary Subscribe to a group's live post feed
// @Description Upgrades to a WebSocket that receives one "post.created" event per new post. Browsers may pass the token as ?token=.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID" format(uuid)
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 400 {object} dto.ErrorResponse "Invalid group ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /groups/{id}/posts/ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid group ID")))
		return
	}

	raw, exists := c.Get("userID")
	userID, ok := raw.(uuid.UUID)
	if !exists || !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "User ID not found in context")))
		return
	}

	found, err := h.groups.Exists(c.Request.Context(), groupID)
	if err != nil {
		h.logger.Error().Err(err).Str("groupID", groupID.String()).Msg("Failed to check group")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Failed to check group")))
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Group not found")))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("groupID", groupID.String()).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:     h.hub,
		conn:    conn,
		send:    make(chan []byte, sendBufferSize),
		userID:  userID,
		groupID: groupID,
		logger:  h.logger,
	}

	select {
	case h.hub.register <- client:
	case <-h.hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
