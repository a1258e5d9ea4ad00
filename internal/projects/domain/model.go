package domain

import (
	"errors"
	"time"
)

// ErrNotFound is returned by stores when no project matches the given id.
var ErrNotFound = errors.New("project not found")

// Project is the single persisted entity. It is storage-agnostic and shared
// across the store implementations and the HTTP layer.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
