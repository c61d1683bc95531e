package sse

import (
	"encoding/json"
	"sync"

	"github.com/dimitrije/frame-nest/internal/models"
)

const (
	EventPhotoAdded         = "photo_added"
	EventPermissionsUpdated = "permissions_updated"
)

type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type PhotoAddedEvent struct {
	CollectionID int64            `json:"collection_id"`
	PhotoID      int64            `json:"photo_id"`
	AddedBy      models.Principal `json:"added_by"`
}

type PermissionsUpdatedEvent struct {
	CollectionID int64            `json:"collection_id"`
	Grantee      models.Principal `json:"grantee"`
	CanView      bool             `json:"can_view"`
	CanEdit      bool             `json:"can_edit"`
	UpdatedBy    models.Principal `json:"updated_by"`
}

type Client struct {
	ID          string
	Principal   models.Principal
	Collections map[int64]bool
	Send        chan []byte
}

type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan *CollectionMessage
	mu         sync.RWMutex
}

type CollectionMessage struct {
	CollectionID int64
	Event        Event
	// Revoked loses its subscription to CollectionID once Event is delivered.
	Revoked models.Principal
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *CollectionMessage, 256),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Event)
			for _, client := range h.clients {
				if client.Collections[msg.CollectionID] {
					select {
					case client.Send <- data:
					default:
						// Client buffer full, skip
					}
				}
			}
			h.mu.RUnlock()

			if msg.Revoked != "" {
				h.mu.Lock()
				for _, client := range h.clients {
					if client.Principal == msg.Revoked {
						delete(client.Collections, msg.CollectionID)
					}
				}
				h.mu.Unlock()
			}
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// ClientPrincipal returns the principal that opened the stream with clientID.
func (h *Hub) ClientPrincipal(clientID string) (models.Principal, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	client, ok := h.clients[clientID]
	if !ok {
		return "", false
	}
	return client.Principal, true
}

func (h *Hub) SubscribeToCollection(clientID string, collectionID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		client.Collections[collectionID] = true
	}
}

func (h *Hub) UnsubscribeFromCollection(clientID string, collectionID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		delete(client.Collections, collectionID)
	}
}

func (h *Hub) BroadcastPhotoAdded(collectionID, photoID int64, addedBy models.Principal) {
	h.broadcast <- &CollectionMessage{
		CollectionID: collectionID,
		Event: Event{
			Type: EventPhotoAdded,
			Data: PhotoAddedEvent{
				CollectionID: collectionID,
				PhotoID:      photoID,
				AddedBy:      addedBy,
			},
		},
	}
}

// BroadcastPermissionsUpdated notifies subscribers of a grant change. A grantee
// left without view access is dropped from the collection's stream.
func (h *Hub) BroadcastPermissionsUpdated(perm *models.Permission) {
	var revoked models.Principal
	if !perm.Allows(models.AccessView) && perm.Grantee != perm.UpdatedBy {
		revoked = perm.Grantee
	}
	h.broadcast <- &CollectionMessage{
		CollectionID: perm.CollectionID,
		Revoked:      revoked,
		Event: Event{
			Type: EventPermissionsUpdated,
			Data: PermissionsUpdatedEvent{
				CollectionID: perm.CollectionID,
				Grantee:      perm.Grantee,
				CanView:      perm.CanView,
				CanEdit:      perm.CanEdit,
				UpdatedBy:    perm.UpdatedBy,
			},
		},
	}
}
