package http

import "github.com/studiokit/projects-backend/internal/projects"

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	store projects.Store
}

func New(store projects.Store) *Handler {
	return &Handler{store: store}
}
