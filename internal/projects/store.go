package projects

import (
	"context"
	"errors"

	"github.com/studiokit/projects-backend/internal/projects/domain"
)

// ErrUpstream marks failures of a remote store backend (network errors or
// non-2xx PostgREST responses) so handlers can answer 502 instead of 500.
var ErrUpstream = errors.New("project store upstream failure")

// UpdateParams carries a partial update. Description is tri-state: absent
// (DescriptionSet false), explicit null (set, nil pointer), or a new value.
type UpdateParams struct {
	Name           *string
	Description    *string
	DescriptionSet bool
}

// Empty reports whether the patch touches no fields.
func (p UpdateParams) Empty() bool {
	return p.Name == nil && !p.DescriptionSet
}

// Store is the persistence contract for projects. Two interchangeable
// implementations exist: a Postgres store reached over pgx, and a Supabase
// store reached over the PostgREST API.
type Store interface {
	// List returns all projects ordered by created_at descending.
	List(ctx context.Context) ([]domain.Project, error)

	// Get returns the project with the given id, or domain.ErrNotFound.
	Get(ctx context.Context, id int64) (*domain.Project, error)

	// Create inserts a project; the backend assigns id and created_at.
	// A nil description leaves the column at its default (null).
	Create(ctx context.Context, name string, description *string) (*domain.Project, error)

	// Update applies a partial update and returns the updated record,
	// or domain.ErrNotFound when the id does not exist.
	Update(ctx context.Context, id int64, patch UpdateParams) (*domain.Project, error)

	// Delete removes the project. It returns false when the id was unknown.
	Delete(ctx context.Context, id int64) (bool, error)
}
