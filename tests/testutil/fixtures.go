package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/craterhub/crater-api/internal/database"
	"github.com/craterhub/crater-api/internal/models"
	"github.com/craterhub/crater-api/internal/services"
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

// CollectionOption configures a test collection builder
type CollectionOption func(*models.CollectionBuilder)

// WithTitle sets the collection title
func WithTitle(title string) CollectionOption {
	return func(b *models.CollectionBuilder) {
		b.Title = title
	}
}

// WithUser sets the owning user
func WithUser(userID uuid.UUID) CollectionOption {
	return func(b *models.CollectionBuilder) {
		b.UserID = userID
	}
}

// WithStatus sets the collection status
func WithStatus(status models.CollectionStatus) CollectionOption {
	return func(b *models.CollectionBuilder) {
		b.Status = status
	}
}

// WithProjects sets the associated project ids
func WithProjects(projects ...uuid.UUID) CollectionOption {
	return func(b *models.CollectionBuilder) {
		b.Projects = projects
	}
}

// CreateCollection persists a test collection through the service insert path
// on its own transaction and returns the builder that was written.
func (f *Fixtures) CreateCollection(t *testing.T, svc *services.CollectionService, opts ...CollectionOption) models.CollectionBuilder {
	t.Helper()
	f.counter++

	builder := models.CollectionBuilder{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Title:       fmt.Sprintf("Test Collection %d", f.counter),
		Description: fmt.Sprintf("description %d", f.counter),
		Status:      models.StatusListed,
	}

	for _, opt := range opts {
		opt(&builder)
	}

	ctx := context.Background()

	tx, err := f.db.Pool.Begin(ctx)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := svc.Insert(ctx, tx, builder); err != nil {
		t.Fatalf("failed to insert collection: %v", err)
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("failed to commit collection insert: %v", err)
	}

	return builder
}
