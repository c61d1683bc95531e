package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dimitrije/frame-nest/internal/database"
	"github.com/dimitrije/frame-nest/internal/models"
	"github.com/jackc/pgx/v5"
)

type PermissionService struct {
	db *database.DB
}

func NewPermissionService(db *database.DB) *PermissionService {
	return &PermissionService{db: db}
}

// Authorize returns ErrCollectionNotFound if the collection does not exist and
// ErrUnauthorized if caller lacks the requested access. The owner has every access.
func (s *PermissionService) Authorize(ctx context.Context, collectionID int64, caller models.Principal, access models.Access) error {
	var owner models.Principal
	grant := models.Permission{CollectionID: collectionID, Grantee: caller}
	err := s.db.Pool.QueryRow(ctx, `
		SELECT c.owner, COALESCE(p.can_view, FALSE), COALESCE(p.can_edit, FALSE)
		FROM collections c
		LEFT JOIN collection_permissions p ON p.collection_id = c.id AND p.grantee = $2
		WHERE c.id = $1
	`, collectionID, string(caller)).Scan(&owner, &grant.CanView, &grant.CanEdit)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrCollectionNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load access for collection %d: %w", collectionID, err)
	}

	if owner == caller {
		return nil
	}
	if !grant.Allows(access) {
		return ErrUnauthorized
	}
	return nil
}

// Set upserts the grant for (collectionID, grantee). Only the collection owner may call it.
func (s *PermissionService) Set(ctx context.Context, collectionID int64, grantee models.Principal, canView, canEdit bool, caller models.Principal) (*models.Permission, error) {
	if err := checkCollectionID(collectionID); err != nil {
		return nil, err
	}
	if err := ValidatePrincipal(grantee); err != nil {
		return nil, err
	}
	if err := s.Authorize(ctx, collectionID, caller, models.AccessOwner); err != nil {
		return nil, err
	}

	var perm models.Permission
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO collection_permissions (collection_id, grantee, can_view, can_edit, updated_by)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (collection_id, grantee)
		DO UPDATE SET can_view = EXCLUDED.can_view, can_edit = EXCLUDED.can_edit,
			updated_by = EXCLUDED.updated_by, updated_at = NOW()
		RETURNING collection_id, grantee, can_view, can_edit, updated_by, updated_at
	`, collectionID, string(grantee), canView, canEdit, string(caller)).Scan(
		&perm.CollectionID, &perm.Grantee, &perm.CanView, &perm.CanEdit,
		&perm.UpdatedBy, &perm.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set permissions: %w", err)
	}
	return &perm, nil
}

// Get returns nil without an error when no grant exists.
func (s *PermissionService) Get(ctx context.Context, collectionID int64, grantee models.Principal) (*models.Permission, error) {
	var perm models.Permission
	err := s.db.Pool.QueryRow(ctx, `
		SELECT collection_id, grantee, can_view, can_edit, updated_by, updated_at
		FROM collection_permissions
		WHERE collection_id = $1 AND grantee = $2
	`, collectionID, string(grantee)).Scan(
		&perm.CollectionID, &perm.Grantee, &perm.CanView, &perm.CanEdit,
		&perm.UpdatedBy, &perm.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &perm, nil
}

func (s *PermissionService) List(ctx context.Context, collectionID int64, caller models.Principal) ([]models.Permission, error) {
	if err := s.Authorize(ctx, collectionID, caller, models.AccessOwner); err != nil {
		return nil, err
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT collection_id, grantee, can_view, can_edit, updated_by, updated_at
		FROM collection_permissions
		WHERE collection_id = $1
		ORDER BY grantee ASC
	`, collectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var perms []models.Permission
	for rows.Next() {
		var p models.Permission
		if err := rows.Scan(&p.CollectionID, &p.Grantee, &p.CanView, &p.CanEdit, &p.UpdatedBy, &p.UpdatedAt); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}
