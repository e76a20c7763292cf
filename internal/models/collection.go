package models

import (
	"time"

	"github.com/google/uuid"
)

// CollectionStatus controls the visibility of a collection. It is stored as
// a string in both Postgres and the cache snapshot.
type CollectionStatus string

const (
	StatusDraft    CollectionStatus = "draft"
	StatusListed   CollectionStatus = "listed"
	StatusUnlisted CollectionStatus = "unlisted"
	StatusPrivate  CollectionStatus = "private"
	StatusRejected CollectionStatus = "rejected"
	StatusUnknown  CollectionStatus = "unknown"
)

// StatusFromString never fails; unrecognized values map to StatusUnknown so
// that rows written by newer versions still deserialize.
func StatusFromString(s string) CollectionStatus {
	switch CollectionStatus(s) {
	case StatusDraft, StatusListed, StatusUnlisted, StatusPrivate, StatusRejected:
		return CollectionStatus(s)
	default:
		return StatusUnknown
	}
}

func (s CollectionStatus) String() string {
	return string(s)
}

type Collection struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"user_id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Created     time.Time        `json:"created"`
	Updated     time.Time        `json:"updated"`
	IconURL     *string          `json:"icon_url"`
	Color       *int32           `json:"color"`
	Status      CollectionStatus `json:"status"`
	Projects    []uuid.UUID      `json:"projects"`
}

// CollectionBuilder holds the caller-supplied fields of a new collection.
// The ID comes from the caller's id supplier and never changes afterwards;
// timestamps are assigned at insert time.
type CollectionBuilder struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Description string
	Status      CollectionStatus
	Projects    []uuid.UUID
}
