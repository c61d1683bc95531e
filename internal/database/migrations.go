package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS collections (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(64) NOT NULL,
		description VARCHAR(256) NOT NULL DEFAULT '',
		owner VARCHAR(150) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS photos (
		id BIGSERIAL PRIMARY KEY,
		collection_id BIGINT NOT NULL REFERENCES collections(id),
		url TEXT NOT NULL,
		metadata TEXT NOT NULL DEFAULT '',
		added_by VARCHAR(150) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS collection_permissions (
		collection_id BIGINT NOT NULL REFERENCES collections(id),
		grantee VARCHAR(150) NOT NULL,
		can_view BOOLEAN NOT NULL DEFAULT FALSE,
		can_edit BOOLEAN NOT NULL DEFAULT FALSE,
		updated_by VARCHAR(150) NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		PRIMARY KEY (collection_id, grantee)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_collections_owner ON collections(owner)`,
	`CREATE INDEX IF NOT EXISTS idx_photos_collection_id ON photos(collection_id, id)`,
	`CREATE INDEX IF NOT EXISTS idx_collection_permissions_grantee ON collection_permissions(grantee)`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
