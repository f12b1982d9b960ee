package service

import "github.com/roseyco/agency-portal/internal/core/domain"

// navSection is the static form of a navigation section.
type navSection struct {
	title   string
	entries []navEntry
}

type navEntry struct {
	path  string
	label string
	icon  string
	badge int
}

var adminNavigation = []navSection{
	{"ESSENTIALS", []navEntry{
		{path: "/admin/dashboard", label: "Dashboard", icon: "layout-dashboard"},
		{path: "/admin/clients", label: "My Clients", icon: "users"},
		{path: "/admin/projects", label: "My Projects", icon: "folder-kanban"},
		{path: "/admin/tasks", label: "My Tasks", icon: "check-square"},
		{path: "/admin/my-calendar", label: "My Calendar", icon: "calendar"},
	}},
	{"TEAM SPACE", []navEntry{
		{path: "/admin/all-clients", label: "All Clients", icon: "users"},
		{path: "/admin/all-projects", label: "All Projects", icon: "folder-kanban"},
		{path: "/admin/all-tasks", label: "All Tasks", icon: "clipboard-list"},
		{path: "/admin/calendar", label: "Team Calendar", icon: "calendar"},
		{path: "/admin/reports", label: "Reports", icon: "bar-chart"},
		{path: "/admin/chat", label: "Team Chat", icon: "message-square"},
		{path: "/admin/shared-notes", label: "Shared Notes / Ideas", icon: "scroll-text"},
	}},
	{"RESOURCES", []navEntry{
		{path: "/admin/internal-docs", label: "Internal Docs", icon: "book-open"},
		{path: "/admin/tools", label: "Tools & Links", icon: "tool"},
		{path: "/admin/sops", label: "SOPs / Training", icon: "file-box"},
		{path: "/admin/vault", label: "Password Vault", icon: "key-round"},
		{path: "/admin/brand-assets", label: "Brand Assets", icon: "image"},
		{path: "/admin/legal", label: "Legal / Contracts", icon: "scale"},
	}},
	{"SETTINGS", []navEntry{
		{path: "/admin/settings", label: "Settings", icon: "settings"},
	}},
	{"PROFILE", []navEntry{
		{path: "/admin/account", label: "My Account", icon: "user"},
	}},
}

var clientNavigation = []navSection{
	{"WORKSPACE", []navEntry{
		{path: "/dashboard", label: "Dashboard", icon: "layout-dashboard"},
		{path: "/projects", label: "My Projects", icon: "folder-kanban"},
		{path: "/tasks", label: "Tasks", icon: "clipboard-list"},
		{path: "/deliverables", label: "Deliverables", icon: "file-box"},
		{path: "/meetings", label: "Meetings", icon: "calendar"},
		{path: "/messages", label: "Messages", icon: "message-square", badge: 3},
	}},
	{"ACCOUNT", []navEntry{
		{path: "/forms", label: "Forms & Requests", icon: "scroll-text"},
		{path: "/account", label: "My Account", icon: "user"},
		{path: "/notifications", label: "Notifications", icon: "bell", badge: 1},
		{path: "/help", label: "Help & Support", icon: "help-circle"},
	}},
}

// LogoutAction is available in every shell regardless of role.
var LogoutAction = domain.NavigationAction{
	ID:     "logout",
	Label:  "Logout",
	Icon:   "log-out",
	Method: "DELETE",
	Href:   "/api/session",
}

// EntriesFor returns the ordered navigation sections of a role. The result is
// a fresh copy; callers may mutate it. Unknown roles get no sections.
func EntriesFor(role domain.Role) []domain.NavigationSection {
	var src []navSection
	switch role {
	case domain.RoleAdmin:
		src = adminNavigation
	case domain.RoleClient:
		src = clientNavigation
	default:
		return nil
	}

	out := make([]domain.NavigationSection, 0, len(src))
	for _, sec := range src {
		entries := make([]domain.NavigationEntry, 0, len(sec.entries))
		for _, e := range sec.entries {
			ne := domain.NavigationEntry{
				Path:    e.path,
				Label:   e.label,
				Icon:    e.icon,
				Section: sec.title,
			}
			if e.badge > 0 {
				n := e.badge
				ne.BadgeCount = &n
			}
			entries = append(entries, ne)
		}
		out = append(out, domain.NavigationSection{Title: sec.title, Entries: entries})
	}
	return out
}

// IsActive is exact path equality; there is no prefix matching.
func IsActive(entry domain.NavigationEntry, currentPath string) bool {
	return entry.Path == currentPath
}

// NavigationFor returns EntriesFor(role) with the Active flag set against currentPath.
func NavigationFor(role domain.Role, currentPath string) []domain.NavigationSection {
	sections := EntriesFor(role)
	for i := range sections {
		for j := range sections[i].Entries {
			sections[i].Entries[j].Active = IsActive(sections[i].Entries[j], currentPath)
		}
	}
	return sections
}
