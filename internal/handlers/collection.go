package handlers

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"

	"github.com/craterhub/crater-api/internal/database"
	"github.com/craterhub/crater-api/internal/middleware"
	"github.com/craterhub/crater-api/internal/models"
	"github.com/craterhub/crater-api/pkg/dto"
)

type CollectionHandler struct {
	collections CollectionServiceInterface
	db          *database.DB
	log         *zap.Logger
}

func NewCollectionHandler(collections CollectionServiceInterface, db *database.DB, log *zap.Logger) *CollectionHandler {
	return &CollectionHandler{
		collections: collections,
		db:          db,
		log:         log,
	}
}

// Create inserts a new collection inside a transaction owned by this
// handler. The id is assigned here, before first persistence.
func (h *CollectionHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateCollectionRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Title == "" {
		c.BadRequest("title is required")
		return
	}

	status := models.StatusDraft
	if req.Status != "" {
		status = models.StatusFromString(req.Status)
	}

	builder := models.CollectionBuilder{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Projects:    req.Projects,
	}

	ctx := context.Background()

	tx, err := h.db.Pool.Begin(ctx)
	if err != nil {
		h.log.Error("failed to begin transaction", zap.Error(err))
		c.InternalServerError("failed to create collection")
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	id, err := h.collections.Insert(ctx, tx, builder)
	if err != nil {
		h.log.Error("failed to insert collection", zap.Error(err))
		c.InternalServerError("failed to create collection")
		return
	}

	if err := tx.Commit(ctx); err != nil {
		h.log.Error("failed to commit collection insert", zap.Error(err))
		c.InternalServerError("failed to create collection")
		return
	}

	_ = c.JSON(201, dto.CreateCollectionResponse{ID: id})
}

func (h *CollectionHandler) Get(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	collectionID, err := uuid.Parse(c.Param("collectionId"))
	if err != nil {
		c.BadRequest("invalid collection id")
		return
	}

	ctx := context.Background()

	collection, err := h.collections.Get(ctx, h.db.Pool, collectionID)
	if err != nil {
		h.log.Error("failed to get collection", zap.Error(err))
		c.InternalServerError("failed to get collection")
		return
	}
	if collection == nil {
		c.NotFound("collection not found")
		return
	}

	_ = c.JSON(200, toCollectionResponse(collection))
}

// GetMany serves GET /collections?ids=a,b,c. Ids that exist in neither tier
// are simply absent from the response.
func (h *CollectionHandler) GetMany(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	raw := c.QueryParam("ids")
	if raw == "" {
		_ = c.JSON(200, []dto.CollectionResponse{})
		return
	}

	var ids []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			c.BadRequest("invalid collection id: " + part)
			return
		}
		ids = append(ids, id)
	}

	ctx := context.Background()

	collections, err := h.collections.GetMany(ctx, h.db.Pool, ids)
	if err != nil {
		h.log.Error("failed to get collections", zap.Error(err))
		c.InternalServerError("failed to get collections")
		return
	}

	response := make([]dto.CollectionResponse, len(collections))
	for i := range collections {
		response[i] = toCollectionResponse(&collections[i])
	}

	_ = c.JSON(200, response)
}

// Delete removes a collection inside a handler-owned transaction and
// reports 404 when there was nothing to remove.
func (h *CollectionHandler) Delete(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	collectionID, err := uuid.Parse(c.Param("collectionId"))
	if err != nil {
		c.BadRequest("invalid collection id")
		return
	}

	ctx := context.Background()

	tx, err := h.db.Pool.Begin(ctx)
	if err != nil {
		h.log.Error("failed to begin transaction", zap.Error(err))
		c.InternalServerError("failed to delete collection")
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	removed, err := h.collections.Remove(ctx, tx, collectionID)
	if err != nil {
		h.log.Error("failed to delete collection", zap.Error(err))
		c.InternalServerError("failed to delete collection")
		return
	}
	if !removed {
		c.NotFound("collection not found")
		return
	}

	if err := tx.Commit(ctx); err != nil {
		h.log.Error("failed to commit collection delete", zap.Error(err))
		c.InternalServerError("failed to delete collection")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "collection deleted"})
}

func toCollectionResponse(col *models.Collection) dto.CollectionResponse {
	return dto.CollectionResponse{
		ID:          col.ID,
		UserID:      col.UserID,
		Title:       col.Title,
		Description: col.Description,
		Created:     col.Created,
		Updated:     col.Updated,
		IconURL:     col.IconURL,
		Color:       col.Color,
		Status:      col.Status.String(),
		Projects:    col.Projects,
	}
}
