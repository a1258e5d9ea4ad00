package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studiokit/projects-backend/internal/projects"
	"github.com/studiokit/projects-backend/internal/projects/domain"
)

// Store persists projects in Postgres through a pgx pool.
type Store struct {
	db *pgxpool.Pool
}

var _ projects.Store = (*Store)(nil)

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) List(ctx context.Context) ([]domain.Project, error) {
	const q = `
select id, name, description, created_at
from projects
order by created_at desc, id desc;
`
	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id int64) (*domain.Project, error) {
	const q = `
select id, name, description, created_at
from projects
where id = $1;
`
	var p domain.Project
	err := s.db.QueryRow(ctx, q, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *Store) Create(ctx context.Context, name string, description *string) (*domain.Project, error) {
	if name == "" {
		return nil, fmt.Errorf("name required")
	}

	const q = `
insert into projects (name, description)
values ($1, $2)
returning id, name, description, created_at;
`
	var p domain.Project
	err := s.db.QueryRow(ctx, q, name, description).
		Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) Update(ctx context.Context, id int64, patch projects.UpdateParams) (*domain.Project, error) {
	if patch.Empty() {
		return s.Get(ctx, id)
	}

	sets := make([]string, 0, 2)
	args := []any{id}
	if patch.Name != nil {
		args = append(args, *patch.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if patch.DescriptionSet {
		args = append(args, patch.Description)
		sets = append(sets, fmt.Sprintf("description = $%d", len(args)))
	}

	q := fmt.Sprintf(`
update projects
set %s
where id = $1
returning id, name, description, created_at;
`, strings.Join(sets, ", "))

	var p domain.Project
	err := s.db.QueryRow(ctx, q, args...).
		Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	const q = `delete from projects where id = $1;`
	ct, err := s.db.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
