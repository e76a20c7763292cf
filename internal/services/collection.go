package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/craterhub/crater-api/internal/database"
	"github.com/craterhub/crater-api/internal/models"
)

// CollectionCache is the cache-tier contract the store consumes. Implemented
// by cache.Cache; tests substitute instrumented doubles.
type CollectionCache interface {
	Key(id string) string
	GetMany(ctx context.Context, keys []string) ([]*string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// CollectionService is a cache-aside store for collections: reads check the
// cache tier first and fall back to Postgres in one batched query, writes go
// to Postgres only. The service holds no state of its own; the durable
// executor is supplied per call and the caller owns its transaction
// lifetime.
//
// With cacheRequired (the default) a cache outage fails reads outright
// instead of silently shifting the whole read load onto Postgres. Flipping
// CACHE_REQUIRED off degrades reads to durable-only and turns cache write
// and invalidation failures into warnings.
type CollectionService struct {
	cache         CollectionCache
	cacheRequired bool
	log           *zap.Logger
}

func NewCollectionService(cache CollectionCache, cacheRequired bool, log *zap.Logger) *CollectionService {
	return &CollectionService{
		cache:         cache,
		cacheRequired: cacheRequired,
		log:           log,
	}
}

const selectCollectionsQuery = `
SELECT c.id, c.user_id, c.title, c.description, c.icon_url, c.color,
       c.created, c.updated, c.status,
       ARRAY_AGG(DISTINCT cp.project_id) FILTER (WHERE cp.project_id IS NOT NULL) AS projects
FROM collections c
LEFT JOIN collections_projects cp ON cp.collection_id = c.id
WHERE c.id = ANY($1)
GROUP BY c.id`

// Get returns the collection with the given id, or nil when it exists in
// neither tier. Absence is not an error.
func (s *CollectionService) Get(ctx context.Context, exec database.Executor, id uuid.UUID) (*models.Collection, error) {
	collections, err := s.GetMany(ctx, exec, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(collections) == 0 {
		return nil, nil
	}
	return &collections[0], nil
}

// GetMany resolves ids against the cache tier with a single MGET, then
// fetches the rest from Postgres in a single query and writes the fetched
// rows back to the cache one by one. Ids present in neither tier are
// silently absent from the result, and result order is unspecified.
//
// A snapshot that fails to deserialize counts as a miss. If a write-back
// fails mid-batch, entries already written stay cached and the call fails;
// callers must not treat a failed GetMany as having had no cache effect.
func (s *CollectionService) GetMany(ctx context.Context, exec database.Executor, ids []uuid.UUID) ([]models.Collection, error) {
	found := make([]models.Collection, 0, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.cache.Key(id.String())
	}

	remaining := make([]uuid.UUID, len(ids))
	copy(remaining, ids)

	snapshots, err := s.cache.GetMany(ctx, keys)
	if err != nil {
		if s.cacheRequired {
			return nil, err
		}
		s.log.Warn("cache read failed, serving from database", zap.Error(err))
		snapshots = nil
	}

	for _, snapshot := range snapshots {
		if snapshot == nil {
			continue
		}
		var col models.Collection
		if err := json.Unmarshal([]byte(*snapshot), &col); err != nil {
			// corrupt snapshot, treat as a miss
			continue
		}
		if !containsID(remaining, col.ID) {
			continue
		}
		remaining = removeID(remaining, col.ID)
		found = append(found, col)
	}

	if len(remaining) == 0 {
		return found, nil
	}

	rows, err := exec.Query(ctx, selectCollectionsQuery, remaining)
	if err != nil {
		return nil, fmt.Errorf("select collections: %w", err)
	}
	defer rows.Close()

	var fetched []models.Collection
	for rows.Next() {
		var col models.Collection
		var status string
		var projects []uuid.UUID
		if err := rows.Scan(
			&col.ID, &col.UserID, &col.Title, &col.Description,
			&col.IconURL, &col.Color, &col.Created, &col.Updated,
			&status, &projects,
		); err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		col.Status = models.StatusFromString(status)
		if projects == nil {
			projects = []uuid.UUID{}
		}
		col.Projects = projects
		fetched = append(fetched, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select collections: %w", err)
	}

	for _, col := range fetched {
		snapshot, err := json.Marshal(col)
		if err != nil {
			return nil, fmt.Errorf("marshal collection %s: %w", col.ID, err)
		}
		if err := s.cache.Set(ctx, s.cache.Key(col.ID.String()), string(snapshot)); err != nil {
			if s.cacheRequired {
				return nil, err
			}
			s.log.Warn("cache write-back failed",
				zap.String("collection_id", col.ID.String()),
				zap.Error(err))
		}
		found = append(found, col)
	}

	return found, nil
}

// Insert writes the full initial state of a new collection on the caller's
// transaction: the entity row first, then one insert-if-absent statement per
// project so duplicate ids in the builder collapse to a single pair. The
// cache is left untouched; the next read populates it.
func (s *CollectionService) Insert(ctx context.Context, tx database.Executor, builder models.CollectionBuilder) (uuid.UUID, error) {
	if builder.ID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("collection id is required")
	}
	if builder.Title == "" {
		return uuid.Nil, fmt.Errorf("collection title is required")
	}

	now := time.Now().UTC()
	col := models.Collection{
		ID:          builder.ID,
		UserID:      builder.UserID,
		Title:       builder.Title,
		Description: builder.Description,
		Created:     now,
		Updated:     now,
		Status:      builder.Status,
		Projects:    builder.Projects,
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO collections (
			id, user_id, title, description,
			created, updated, icon_url, color, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, col.ID, col.UserID, col.Title, col.Description,
		col.Created, col.Updated, col.IconURL, col.Color, col.Status.String())
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert collection: %w", err)
	}

	for _, projectID := range col.Projects {
		_, err := tx.Exec(ctx, `
			INSERT INTO collections_projects (collection_id, project_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, col.ID, projectID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("insert collection project: %w", err)
		}
	}

	return col.ID, nil
}

// Remove deletes a collection on the caller's transaction and invalidates
// its cache entry. It returns (false, nil) when the collection does not
// exist. The durable delete happens before the cache delete, but the two are
// not atomic: a concurrent reader can hit the stale cache entry in between,
// bounded by the TTL if the invalidation itself fails.
func (s *CollectionService) Remove(ctx context.Context, tx database.Executor, id uuid.UUID) (bool, error) {
	col, err := s.Get(ctx, tx, id)
	if err != nil {
		return false, err
	}
	if col == nil {
		return false, nil
	}

	_, err = tx.Exec(ctx, `
		DELETE FROM collections_projects
		WHERE collection_id = $1
	`, id)
	if err != nil {
		return false, fmt.Errorf("delete collection projects: %w", err)
	}

	_, err = tx.Exec(ctx, `
		DELETE FROM collections
		WHERE id = $1
	`, id)
	if err != nil {
		return false, fmt.Errorf("delete collection: %w", err)
	}

	if err := s.ClearCache(ctx, col.ID); err != nil {
		if s.cacheRequired {
			return false, err
		}
		s.log.Warn("cache invalidation failed, entry expires with TTL",
			zap.String("collection_id", col.ID.String()),
			zap.Error(err))
	}

	return true, nil
}

// ClearCache drops the cached snapshot for id. Collaborators that mutate a
// collection through paths other than Remove call this to force the next
// read to the durable tier.
func (s *CollectionService) ClearCache(ctx context.Context, id uuid.UUID) error {
	return s.cache.Delete(ctx, s.cache.Key(id.String()))
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := ids[:0]
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}
