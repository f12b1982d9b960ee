package ports

import "github.com/roseyco/agency-portal/internal/core/domain"

// WorkspaceCatalog is the read-only sample data behind the page views.
type WorkspaceCatalog interface {
	Clients() []domain.Client
	Projects() []domain.Project
	Metrics() []domain.Metric
}

// ListFilter narrows a catalog listing. Search is a case-insensitive substring
// match; an empty Status matches everything.
type ListFilter struct {
	Search string
	Status string
}
