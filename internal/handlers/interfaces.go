package handlers

import (
	"context"

	"github.com/dimitrije/frame-nest/internal/models"
	"github.com/dimitrije/frame-nest/internal/sse"
)

// CollectionServiceInterface defines the methods used by handlers from CollectionService
type CollectionServiceInterface interface {
	Create(ctx context.Context, name, description string, owner models.Principal) (*models.Collection, error)
	GetByID(ctx context.Context, collectionID int64) (*models.Collection, error)
	GetByOwner(ctx context.Context, owner models.Principal) ([]models.Collection, error)
}

// PhotoServiceInterface defines the methods used by handlers from PhotoService
type PhotoServiceInterface interface {
	Add(ctx context.Context, collectionID int64, url, metadata string, caller models.Principal) (*models.Photo, error)
	GetByID(ctx context.Context, photoID int64, caller models.Principal) (*models.Photo, error)
	List(ctx context.Context, collectionID int64, caller models.Principal, afterID int64, limit int) ([]models.Photo, error)
}

// PermissionServiceInterface defines the methods used by handlers from PermissionService
type PermissionServiceInterface interface {
	Authorize(ctx context.Context, collectionID int64, caller models.Principal, access models.Access) error
	Set(ctx context.Context, collectionID int64, grantee models.Principal, canView, canEdit bool, caller models.Principal) (*models.Permission, error)
	Get(ctx context.Context, collectionID int64, grantee models.Principal) (*models.Permission, error)
	List(ctx context.Context, collectionID int64, caller models.Principal) ([]models.Permission, error)
}

// HubInterface defines the methods used by handlers from the SSE hub
type HubInterface interface {
	Register(client *sse.Client)
	Unregister(client *sse.Client)
	ClientPrincipal(clientID string) (models.Principal, bool)
	SubscribeToCollection(clientID string, collectionID int64)
	UnsubscribeFromCollection(clientID string, collectionID int64)
	BroadcastPhotoAdded(collectionID, photoID int64, addedBy models.Principal)
	BroadcastPermissionsUpdated(perm *models.Permission)
}
