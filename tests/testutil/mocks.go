package testutil

import (
	"context"

	"github.com/dimitrije/frame-nest/internal/models"
	"github.com/dimitrije/frame-nest/internal/sse"
	"github.com/stretchr/testify/mock"
)

// MockCollectionService mocks the CollectionService
type MockCollectionService struct {
	mock.Mock
}

func (m *MockCollectionService) Create(ctx context.Context, name, description string, owner models.Principal) (*models.Collection, error) {
	args := m.Called(ctx, name, description, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Collection), args.Error(1)
}

func (m *MockCollectionService) GetByID(ctx context.Context, collectionID int64) (*models.Collection, error) {
	args := m.Called(ctx, collectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Collection), args.Error(1)
}

func (m *MockCollectionService) GetByOwner(ctx context.Context, owner models.Principal) ([]models.Collection, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Collection), args.Error(1)
}

// MockPhotoService mocks the PhotoService
type MockPhotoService struct {
	mock.Mock
}

func (m *MockPhotoService) Add(ctx context.Context, collectionID int64, url, metadata string, caller models.Principal) (*models.Photo, error) {
	args := m.Called(ctx, collectionID, url, metadata, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Photo), args.Error(1)
}

func (m *MockPhotoService) GetByID(ctx context.Context, photoID int64, caller models.Principal) (*models.Photo, error) {
	args := m.Called(ctx, photoID, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Photo), args.Error(1)
}

func (m *MockPhotoService) List(ctx context.Context, collectionID int64, caller models.Principal, afterID int64, limit int) ([]models.Photo, error) {
	args := m.Called(ctx, collectionID, caller, afterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Photo), args.Error(1)
}

// MockPermissionService mocks the PermissionService
type MockPermissionService struct {
	mock.Mock
}

func (m *MockPermissionService) Authorize(ctx context.Context, collectionID int64, caller models.Principal, access models.Access) error {
	args := m.Called(ctx, collectionID, caller, access)
	return args.Error(0)
}

func (m *MockPermissionService) Set(ctx context.Context, collectionID int64, grantee models.Principal, canView, canEdit bool, caller models.Principal) (*models.Permission, error) {
	args := m.Called(ctx, collectionID, grantee, canView, canEdit, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Permission), args.Error(1)
}

func (m *MockPermissionService) Get(ctx context.Context, collectionID int64, grantee models.Principal) (*models.Permission, error) {
	args := m.Called(ctx, collectionID, grantee)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Permission), args.Error(1)
}

func (m *MockPermissionService) List(ctx context.Context, collectionID int64, caller models.Principal) ([]models.Permission, error) {
	args := m.Called(ctx, collectionID, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Permission), args.Error(1)
}

// MockHub mocks the SSE hub
type MockHub struct {
	mock.Mock
}

func (m *MockHub) Register(client *sse.Client) {
	m.Called(client)
}

func (m *MockHub) Unregister(client *sse.Client) {
	m.Called(client)
}

func (m *MockHub) ClientPrincipal(clientID string) (models.Principal, bool) {
	args := m.Called(clientID)
	return args.Get(0).(models.Principal), args.Bool(1)
}

func (m *MockHub) SubscribeToCollection(clientID string, collectionID int64) {
	m.Called(clientID, collectionID)
}

func (m *MockHub) UnsubscribeFromCollection(clientID string, collectionID int64) {
	m.Called(clientID, collectionID)
}

func (m *MockHub) BroadcastPhotoAdded(collectionID, photoID int64, addedBy models.Principal) {
	m.Called(collectionID, photoID, addedBy)
}

func (m *MockHub) BroadcastPermissionsUpdated(perm *models.Permission) {
	m.Called(perm)
}
