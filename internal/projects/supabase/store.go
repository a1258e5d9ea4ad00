package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/studiokit/projects-backend/internal/projects"
	"github.com/studiokit/projects-backend/internal/projects/domain"
	"github.com/studiokit/projects-backend/internal/supabase"
)

const table = "projects"

// Store persists projects through a Supabase PostgREST endpoint.
type Store struct {
	client *supabase.Client
}

var _ projects.Store = (*Store)(nil)

func NewStore(client *supabase.Client) *Store {
	return &Store{client: client}
}

type row struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (r row) toDomain() domain.Project {
	return domain.Project{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
}

func (s *Store) List(ctx context.Context) ([]domain.Project, error) {
	params := url.Values{}
	params.Set("select", "*")
	params.Set("order", "created_at.desc,id.desc")

	var rows []row
	if err := s.client.Select(ctx, table, params, false, &rows); err != nil {
		return nil, upstream(err)
	}

	out := make([]domain.Project, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, id int64) (*domain.Project, error) {
	params := url.Values{}
	params.Set("select", "*")
	params.Set("id", fmt.Sprintf("eq.%d", id))

	var r row
	if err := s.client.Select(ctx, table, params, true, &r); err != nil {
		// PostgREST answers 406 when a single-object select matches no rows.
		var se *supabase.StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotAcceptable {
			return nil, domain.ErrNotFound
		}
		return nil, upstream(err)
	}

	p := r.toDomain()
	return &p, nil
}

func (s *Store) Create(ctx context.Context, name string, description *string) (*domain.Project, error) {
	if name == "" {
		return nil, fmt.Errorf("name required")
	}

	payload := map[string]any{"name": name}
	if description != nil {
		payload["description"] = *description
	}

	var r row
	if err := s.client.Insert(ctx, table, payload, &r); err != nil {
		return nil, upstream(err)
	}

	p := r.toDomain()
	return &p, nil
}

func (s *Store) Update(ctx context.Context, id int64, patch projects.UpdateParams) (*domain.Project, error) {
	if patch.Empty() {
		return s.Get(ctx, id)
	}

	payload := map[string]any{}
	if patch.Name != nil {
		payload["name"] = *patch.Name
	}
	if patch.DescriptionSet {
		if patch.Description != nil {
			payload["description"] = *patch.Description
		} else {
			payload["description"] = nil
		}
	}

	params := url.Values{}
	params.Set("id", fmt.Sprintf("eq.%d", id))

	var rows []row
	if err := s.client.Update(ctx, table, params, payload, &rows); err != nil {
		return nil, upstream(err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}

	p := rows[0].toDomain()
	return &p, nil
}

func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	params := url.Values{}
	params.Set("id", fmt.Sprintf("eq.%d", id))

	var rows []row
	if err := s.client.Delete(ctx, table, params, &rows); err != nil {
		return false, upstream(err)
	}
	return len(rows) > 0, nil
}

// upstream tags client failures so the HTTP layer maps them to 502.
func upstream(err error) error {
	return fmt.Errorf("%w: %v", projects.ErrUpstream, err)
}
