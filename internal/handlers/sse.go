package handlers

import (
	"fmt"

	"github.com/dimitrije/frame-nest/internal/middleware"
	"github.com/dimitrije/frame-nest/internal/models"
	"github.com/dimitrije/frame-nest/internal/sse"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type SSEHandler struct {
	hub               HubInterface
	permissionService PermissionServiceInterface
}

func NewSSEHandler(hub HubInterface, permissionService PermissionServiceInterface) *SSEHandler {
	return &SSEHandler{
		hub:               hub,
		permissionService: permissionService,
	}
}

// Connect streams the events of one collection to a caller with view access.
func (h *SSEHandler) Connect(c *drift.Context) {
	caller := middleware.GetPrincipal(c)
	if caller == "" {
		c.Unauthorized("not authenticated")
		return
	}

	collectionID, ok := parseID(c, "collectionId")
	if !ok {
		c.BadRequest("invalid collection id")
		return
	}

	if err := h.permissionService.Authorize(c.Request.Context(), collectionID, caller, models.AccessView); err != nil {
		writeServiceError(c, err, "failed to authorize event stream")
		return
	}

	sseCtx := c.SSE()

	clientID := uuid.New().String()
	client := &sse.Client{
		ID:          clientID,
		Principal:   caller,
		Collections: map[int64]bool{collectionID: true},
		Send:        make(chan []byte, 256),
	}

	h.hub.Register(client)
	defer h.hub.Unregister(client)

	if err := sseCtx.SendJSON(map[string]string{
		"type":      "connected",
		"client_id": clientID,
	}, "system", ""); err != nil {
		return
	}

	done := make(chan struct{})
	go func() {
		<-c.Request.Context().Done()
		close(done)
	}()

	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				return
			}
			if err := sseCtx.Send(string(msg), "message", ""); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// Subscribe adds another collection to an open event stream.
func (h *SSEHandler) Subscribe(c *drift.Context) {
	caller := middleware.GetPrincipal(c)
	if caller == "" {
		c.Unauthorized("not authenticated")
		return
	}

	clientID := c.Param("clientId")
	if clientID == "" {
		c.BadRequest("client_id is required")
		return
	}

	collectionID, ok := parseID(c, "collectionId")
	if !ok {
		c.BadRequest("invalid collection id")
		return
	}

	if !h.ownsClient(clientID, caller) {
		c.NotFound("client not found")
		return
	}

	if err := h.permissionService.Authorize(c.Request.Context(), collectionID, caller, models.AccessView); err != nil {
		writeServiceError(c, err, "failed to authorize subscription")
		return
	}

	h.hub.SubscribeToCollection(clientID, collectionID)

	_ = c.JSON(200, map[string]string{
		"message": fmt.Sprintf("subscribed to collection %d", collectionID),
	})
}

func (h *SSEHandler) Unsubscribe(c *drift.Context) {
	caller := middleware.GetPrincipal(c)
	if caller == "" {
		c.Unauthorized("not authenticated")
		return
	}

	clientID := c.Param("clientId")
	if clientID == "" {
		c.BadRequest("client_id is required")
		return
	}

	collectionID, ok := parseID(c, "collectionId")
	if !ok {
		c.BadRequest("invalid collection id")
		return
	}

	if !h.ownsClient(clientID, caller) {
		c.NotFound("client not found")
		return
	}

	h.hub.UnsubscribeFromCollection(clientID, collectionID)

	_ = c.JSON(200, map[string]string{
		"message": fmt.Sprintf("unsubscribed from collection %d", collectionID),
	})
}

// ownsClient reports whether clientID is a stream opened by caller.
func (h *SSEHandler) ownsClient(clientID string, caller models.Principal) bool {
	principal, ok := h.hub.ClientPrincipal(clientID)
	return ok && principal == caller
}
