package services

import (
	"context"
	"errors"
	"log"

	"github.com/dimitrije/frame-nest/internal/database"
	"github.com/dimitrije/frame-nest/internal/models"
	"github.com/jackc/pgx/v5"
)

// CollectionCache stores immutable collection records by id.
type CollectionCache interface {
	GetCollection(ctx context.Context, id int64) (*models.Collection, error)
	SetCollection(ctx context.Context, collection *models.Collection) error
}

type CollectionService struct {
	db    *database.DB
	cache CollectionCache
}

func NewCollectionService(db *database.DB) *CollectionService {
	return &CollectionService{db: db}
}

// WithCache enables read-through caching for GetByID.
func (s *CollectionService) WithCache(cache CollectionCache) *CollectionService {
	s.cache = cache
	return s
}

func (s *CollectionService) Create(ctx context.Context, name, description string, owner models.Principal) (*models.Collection, error) {
	if err := validateASCII("name", name, 1, MaxNameLength); err != nil {
		return nil, err
	}
	if err := validateASCII("description", description, 0, MaxDescriptionLength); err != nil {
		return nil, err
	}
	if err := ValidatePrincipal(owner); err != nil {
		return nil, err
	}

	var collection models.Collection
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO collections (name, description, owner)
		VALUES ($1, $2, $3)
		RETURNING id, name, description, owner, created_at
	`, name, description, string(owner)).Scan(
		&collection.ID, &collection.Name, &collection.Description,
		&collection.Owner, &collection.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

// GetByID returns nil without an error when the collection does not exist.
func (s *CollectionService) GetByID(ctx context.Context, collectionID int64) (*models.Collection, error) {
	if s.cache != nil {
		cached, err := s.cache.GetCollection(ctx, collectionID)
		if err != nil {
			log.Printf("collection cache lookup %d failed: %v", collectionID, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	var collection models.Collection
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, name, description, owner, created_at
		FROM collections WHERE id = $1
	`, collectionID).Scan(
		&collection.ID, &collection.Name, &collection.Description,
		&collection.Owner, &collection.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetCollection(ctx, &collection); err != nil {
			log.Printf("collection cache store %d failed: %v", collectionID, err)
		}
	}
	return &collection, nil
}

func (s *CollectionService) GetByOwner(ctx context.Context, owner models.Principal) ([]models.Collection, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, name, description, owner, created_at
		FROM collections WHERE owner = $1
		ORDER BY id ASC
	`, string(owner))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var collections []models.Collection
	for rows.Next() {
		var c models.Collection
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Owner, &c.CreatedAt); err != nil {
			return nil, err
		}
		collections = append(collections, c)
	}
	return collections, rows.Err()
}
