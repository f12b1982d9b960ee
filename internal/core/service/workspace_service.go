package service

import (
	"strings"

	"github.com/roseyco/agency-portal/internal/core/domain"
	"github.com/roseyco/agency-portal/internal/core/ports"
)

// WorkspaceService serves the sample data behind the page views.
type WorkspaceService struct {
	catalog ports.WorkspaceCatalog
}

func NewWorkspaceService(catalog ports.WorkspaceCatalog) *WorkspaceService {
	return &WorkspaceService{catalog: catalog}
}

// Clients matches Search against name, company and email.
func (s *WorkspaceService) Clients(f ports.ListFilter) []domain.Client {
	out := make([]domain.Client, 0)
	for _, c := range s.catalog.Clients() {
		if !statusMatches(c.Status, f.Status) {
			continue
		}
		if !containsFold(f.Search, c.Name, c.Company, c.Email) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Projects matches Search against name and description.
func (s *WorkspaceService) Projects(f ports.ListFilter) []domain.Project {
	out := make([]domain.Project, 0)
	for _, p := range s.catalog.Projects() {
		if !statusMatches(p.Status, f.Status) {
			continue
		}
		if !containsFold(f.Search, p.Name, p.Description) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (s *WorkspaceService) Metrics() []domain.Metric {
	return s.catalog.Metrics()
}

func statusMatches(status, want string) bool {
	return want == "" || strings.EqualFold(status, want)
}

func containsFold(needle string, fields ...string) bool {
	if needle == "" {
		return true
	}
	needle = strings.ToLower(needle)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
