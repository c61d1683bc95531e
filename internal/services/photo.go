package services

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/dimitrije/frame-nest/internal/database"
	"github.com/dimitrije/frame-nest/internal/models"
	"github.com/jackc/pgx/v5"
)

const (
	DefaultPhotoPageSize = 20
	MaxPhotoPageSize     = 100
)

type PhotoService struct {
	db          *database.DB
	permissions *PermissionService
}

func NewPhotoService(db *database.DB, permissions *PermissionService) *PhotoService {
	return &PhotoService{db: db, permissions: permissions}
}

// Add stores a photo in the collection. The caller must own the collection or
// hold a grant with edit access. Photo ids are global across collections.
func (s *PhotoService) Add(ctx context.Context, collectionID int64, url, metadata string, caller models.Principal) (*models.Photo, error) {
	if err := checkCollectionID(collectionID); err != nil {
		return nil, err
	}
	if err := validateUTF8("url", url, 1, MaxURLLength); err != nil {
		return nil, err
	}
	if err := validateUTF8("metadata", metadata, 0, MaxMetadataLength); err != nil {
		return nil, err
	}
	if err := s.permissions.Authorize(ctx, collectionID, caller, models.AccessEdit); err != nil {
		return nil, err
	}

	var photo models.Photo
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO photos (collection_id, url, metadata, added_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, collection_id, url, metadata, added_by, created_at
	`, collectionID, url, metadata, string(caller)).Scan(
		&photo.ID, &photo.CollectionID, &photo.URL, &photo.Metadata,
		&photo.AddedBy, &photo.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add photo: %w", err)
	}
	return &photo, nil
}

// GetByID returns nil without an error when the photo does not exist.
func (s *PhotoService) GetByID(ctx context.Context, photoID int64, caller models.Principal) (*models.Photo, error) {
	var photo models.Photo
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, collection_id, url, metadata, added_by, created_at
		FROM photos WHERE id = $1
	`, photoID).Scan(
		&photo.ID, &photo.CollectionID, &photo.URL, &photo.Metadata,
		&photo.AddedBy, &photo.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.permissions.Authorize(ctx, photo.CollectionID, caller, models.AccessView); err != nil {
		return nil, err
	}
	return &photo, nil
}

// List pages through a collection's photos by ascending id, starting after afterID.
func (s *PhotoService) List(ctx context.Context, collectionID int64, caller models.Principal, afterID int64, limit int) ([]models.Photo, error) {
	if limit <= 0 {
		limit = DefaultPhotoPageSize
	}
	if limit > MaxPhotoPageSize {
		limit = MaxPhotoPageSize
	}
	if err := s.permissions.Authorize(ctx, collectionID, caller, models.AccessView); err != nil {
		return nil, err
	}

	qb := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("id", "collection_id", "url", "metadata", "added_by", "created_at").
		From("photos").
		Where(sq.Eq{"collection_id": collectionID})
	if afterID > 0 {
		qb = qb.Where(sq.Gt{"id": afterID})
	}
	query, args, err := qb.OrderBy("id ASC").Limit(uint64(limit)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build photo query: %w", err)
	}

	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []models.Photo
	for rows.Next() {
		var p models.Photo
		if err := rows.Scan(&p.ID, &p.CollectionID, &p.URL, &p.Metadata, &p.AddedBy, &p.CreatedAt); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}
