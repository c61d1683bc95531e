package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/dimitrije/frame-nest/internal/database"
	"github.com/dimitrije/frame-nest/internal/models"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// Principal returns a fresh, well-formed principal
func (f *Fixtures) Principal() models.Principal {
	f.counter++
	return models.Principal(fmt.Sprintf("ST%038d", f.counter))
}

// CreateCollection inserts a collection owned by owner
func (f *Fixtures) CreateCollection(t *testing.T, owner models.Principal, opts ...CollectionOption) *models.Collection {
	t.Helper()
	f.counter++

	col := &models.Collection{
		Name:        fmt.Sprintf("Test Collection %d", f.counter),
		Description: "fixture",
		Owner:       owner,
	}

	for _, opt := range opts {
		opt(col)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO collections (name, description, owner)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, col.Name, col.Description, string(col.Owner)).Scan(&col.ID, &col.CreatedAt)
	if err != nil {
		t.Fatalf("failed to create collection: %v", err)
	}

	return col
}

// CollectionOption configures a test collection
type CollectionOption func(*models.Collection)

// WithCollectionName sets the collection's name
func WithCollectionName(name string) CollectionOption {
	return func(c *models.Collection) {
		c.Name = name
	}
}

// WithDescription sets the collection's description
func WithDescription(description string) CollectionOption {
	return func(c *models.Collection) {
		c.Description = description
	}
}

// AddPhoto inserts a photo into a collection
func (f *Fixtures) AddPhoto(t *testing.T, col *models.Collection, addedBy models.Principal) *models.Photo {
	t.Helper()
	f.counter++

	photo := &models.Photo{
		CollectionID: col.ID,
		URL:          fmt.Sprintf("https://images.example.com/%d.jpg", f.counter),
		Metadata:     `{"fixture":true}`,
		AddedBy:      addedBy,
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO photos (collection_id, url, metadata, added_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, photo.CollectionID, photo.URL, photo.Metadata, string(photo.AddedBy)).Scan(&photo.ID, &photo.CreatedAt)
	if err != nil {
		t.Fatalf("failed to add photo: %v", err)
	}

	return photo
}

// Grant writes a permission row for grantee on col
func (f *Fixtures) Grant(t *testing.T, col *models.Collection, grantee models.Principal, canView, canEdit bool) {
	t.Helper()
	ctx := context.Background()
	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO collection_permissions (collection_id, grantee, can_view, can_edit, updated_by)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (collection_id, grantee) DO UPDATE
		SET can_view = EXCLUDED.can_view, can_edit = EXCLUDED.can_edit
	`, col.ID, string(grantee), canView, canEdit, string(col.Owner))
	if err != nil {
		t.Fatalf("failed to grant permission: %v", err)
	}
}
