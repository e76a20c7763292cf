package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCollectionRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Status      string      `json:"status,omitempty"`
	Projects    []uuid.UUID `json:"projects,omitempty"`
}

type CreateCollectionResponse struct {
	ID uuid.UUID `json:"id"`
}

type CollectionResponse struct {
	ID          uuid.UUID   `json:"id"`
	UserID      uuid.UUID   `json:"user_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Created     time.Time   `json:"created"`
	Updated     time.Time   `json:"updated"`
	IconURL     *string     `json:"icon_url,omitempty"`
	Color       *int32      `json:"color,omitempty"`
	Status      string      `json:"status"`
	Projects    []uuid.UUID `json:"projects"`
}
