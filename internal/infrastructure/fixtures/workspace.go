// Package fixtures holds the static sample data shown in the workspaces.
package fixtures

import (
	"slices"

	"github.com/roseyco/agency-portal/internal/core/domain"
)

// Catalog implements ports.WorkspaceCatalog over fixed in-memory records.
type Catalog struct{}

func NewCatalog() *Catalog { return &Catalog{} }

var clients = []domain.Client{
	{
		ID: "1", Name: "Sarah Johnson", Company: "Tech Innovations Inc",
		Email: "sarah.j@techinnovations.com", Phone: "(555) 123-4567",
		Address: "123 Tech Park, San Francisco, CA", Status: "Active",
		Projects: 3, JoinedDate: "2024-01-15",
	},
	{
		ID: "2", Name: "Michael Chen", Company: "Global Solutions Ltd",
		Email: "m.chen@globalsolutions.com", Phone: "(555) 234-5678",
		Address: "456 Business Ave, New York, NY", Status: "Active",
		Projects: 2, JoinedDate: "2024-02-01",
	},
	{
		ID: "3", Name: "Emily Davis", Company: "Creative Minds Agency",
		Email: "emily@creativeminds.com", Phone: "(555) 345-6789",
		Address: "789 Design Blvd, Austin, TX", Status: "Pending",
		Projects: 1, JoinedDate: "2024-03-10",
	},
	{
		ID: "4", Name: "James Wilson", Company: "Market Leaders Co",
		Email: "j.wilson@marketleaders.com", Phone: "(555) 456-7890",
		Address: "321 Market St, Chicago, IL", Status: "Inactive",
		Projects: 0, JoinedDate: "2023-11-20",
	},
}

var projects = []domain.Project{
	{
		ID: "1", Name: "Website Redesign", Status: "Active", Priority: "High", Progress: 75,
		StartDate: "2024-02-15", EndDate: "2024-04-30",
		Team:        []string{"Sarah J.", "Mike T.", "Emily D."},
		Tasks:       domain.TaskTally{Total: 24, Completed: 18},
		Description: "Complete website redesign and development project",
	},
	{
		ID: "2", Name: "Marketing Campaign", Status: "Active", Priority: "Medium", Progress: 45,
		StartDate: "2024-03-01", EndDate: "2024-05-15",
		Team:        []string{"Chris W.", "Anna P."},
		Tasks:       domain.TaskTally{Total: 18, Completed: 8},
		Description: "Q2 digital marketing campaign",
	},
	{
		ID: "3", Name: "Brand Identity", Status: "On Hold", Priority: "Low", Progress: 30,
		StartDate: "2024-02-01", EndDate: "2024-04-15",
		Team:        []string{"David L.", "Sophie R."},
		Tasks:       domain.TaskTally{Total: 15, Completed: 4},
		Description: "Brand identity refresh and guidelines",
	},
}

var metrics = []domain.Metric{
	{Key: "active_clients", Title: "Active Clients", Value: "24", Change: "+2 this week", ChangeType: "positive"},
	{Key: "active_projects", Title: "Active Projects", Value: "18", Change: "-1 this week", ChangeType: "negative"},
	{Key: "pending_tasks", Title: "Pending Tasks", Value: "42", Change: "+5 this week", ChangeType: "negative"},
	{Key: "upcoming_meetings", Title: "Upcoming Meetings", Value: "7", Change: "3 today", ChangeType: "neutral"},
	{Key: "task_completion", Title: "% Task Completion", Value: "74%", Change: "+3% this month", ChangeType: "positive"},
	{Key: "overdue_tasks", Title: "Overdue Tasks", Value: "3", Change: "Needs attention", ChangeType: "warning"},
}

// Clients returns a copy so callers cannot alter the fixtures.
func (Catalog) Clients() []domain.Client { return slices.Clone(clients) }

func (Catalog) Projects() []domain.Project {
	out := make([]domain.Project, len(projects))
	for i, p := range projects {
		p.Team = slices.Clone(p.Team)
		out[i] = p
	}
	return out
}

func (Catalog) Metrics() []domain.Metric { return slices.Clone(metrics) }
