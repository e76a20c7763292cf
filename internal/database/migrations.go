package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS collections (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL,
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		icon_url VARCHAR(500),
		color INTEGER,
		status VARCHAR(50) NOT NULL,
		created TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		updated TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS collections_projects (
		collection_id UUID NOT NULL REFERENCES collections(id) ON DELETE CASCADE,
		project_id UUID NOT NULL,
		UNIQUE(collection_id, project_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_collections_user_id ON collections(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_collections_projects_collection_id ON collections_projects(collection_id)`,
}

// Migrate applies the schema statements in order. Statements are idempotent
// so repeated startups are safe.
func (d *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := d.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
