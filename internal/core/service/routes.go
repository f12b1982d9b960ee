package service

import (
	"strings"

	"github.com/roseyco/agency-portal/internal/core/domain"
)

const (
	LoginPath      = "/login"
	clientShellDir = "/"
	adminShellDir  = "/admin"
)

// Page is a screen rendered in a shell's content slot.
type Page struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Path  string `json:"path"`
	// Data is the API endpoint that feeds the page, when it has one.
	Data string `json:"data,omitempty"`
}

type pageDef struct {
	key, title, data string
}

// Shell is a protected subtree hosted by the layout.
type Shell struct {
	Base  string
	Owner domain.Role
	pages []pageDef
}

var clientShell = Shell{
	Base:  clientShellDir,
	Owner: domain.RoleClient,
	pages: []pageDef{
		{"dashboard", "Dashboard", ""},
		{"projects", "My Projects", "/api/workspace/client/projects"},
		{"tasks", "Tasks", ""},
		{"deliverables", "Deliverables", ""},
		{"meetings", "Meetings", ""},
		{"messages", "Messages", ""},
		{"forms", "Forms & Requests", ""},
		{"account", "My Account", ""},
		{"notifications", "Notifications", ""},
		{"help", "Help & Support", ""},
	},
}

var adminShell = Shell{
	Base:  adminShellDir,
	Owner: domain.RoleAdmin,
	pages: []pageDef{
		{"dashboard", "Dashboard", "/api/workspace/admin/metrics"},
		{"clients", "My Clients", "/api/workspace/admin/clients"},
		{"projects", "My Projects", ""},
		{"tasks", "My Tasks", ""},
		{"my-calendar", "My Calendar", ""},
		{"calendar", "Team Calendar", ""},
		{"reports", "Reports", ""},
		{"chat", "Team Chat", ""},
		{"all-clients", "All Clients", "/api/workspace/admin/clients"},
		{"all-projects", "All Projects", ""},
		{"all-tasks", "All Tasks", ""},
		{"shared-notes", "Shared Notes & Ideas", ""},
		{"internal-docs", "Internal Docs", ""},
		{"tools", "Tools & Links", ""},
		{"sops", "SOPs / Training", ""},
		{"vault", "Password Vault", ""},
		{"brand-assets", "Brand Assets", ""},
		{"legal", "Legal / Contracts", ""},
		{"settings", "Settings", ""},
		{"account", "My Account", ""},
	},
}

// PagePath joins the shell base with a page key.
func (s Shell) PagePath(key string) string {
	if s.Base == clientShellDir {
		return "/" + key
	}
	return s.Base + "/" + key
}

// Home is the shell's dashboard.
func (s Shell) Home() string {
	return s.PagePath("dashboard")
}

// Pages lists the shell's routable pages in declaration order.
func (s Shell) Pages() []Page {
	out := make([]Page, 0, len(s.pages))
	for _, p := range s.pages {
		out = append(out, Page{Key: p.key, Title: p.title, Path: s.PagePath(p.key), Data: p.data})
	}
	return out
}

func (s Shell) page(key string) (Page, bool) {
	for _, p := range s.pages {
		if p.key == key {
			return Page{Key: p.key, Title: p.title, Path: s.PagePath(p.key), Data: p.data}, true
		}
	}
	return Page{}, false
}

// ShellFor returns the shell owned by a role.
func ShellFor(role domain.Role) Shell {
	if role == domain.RoleAdmin {
		return adminShell
	}
	return clientShell
}

// HomeFor is the landing page after login for a role.
func HomeFor(role domain.Role) string {
	return ShellFor(role).Home()
}

type routeKind int

const (
	routeUnknown routeKind = iota
	routeLogin
	routeIndex
	routePage
)

type route struct {
	kind  routeKind
	shell Shell
	page  Page
}

// NormalizePath strips the query, collapses a trailing slash and maps "" to "/".
func NormalizePath(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	for len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

func matchRoute(path string) route {
	switch path {
	case LoginPath:
		return route{kind: routeLogin}
	case clientShellDir:
		return route{kind: routeIndex, shell: clientShell}
	case adminShellDir:
		return route{kind: routeIndex, shell: adminShell}
	}

	if rest, ok := strings.CutPrefix(path, adminShellDir+"/"); ok {
		if pg, ok := adminShell.page(rest); ok {
			return route{kind: routePage, shell: adminShell, page: pg}
		}
		return route{kind: routeUnknown}
	}
	if pg, ok := clientShell.page(strings.TrimPrefix(path, "/")); ok {
		return route{kind: routePage, shell: clientShell, page: pg}
	}
	return route{kind: routeUnknown}
}

// KnownPaths lists every routable path, used by docs and tests.
func KnownPaths() []string {
	out := []string{LoginPath, clientShellDir, adminShellDir}
	for _, s := range []Shell{clientShell, adminShell} {
		for _, p := range s.Pages() {
			out = append(out, p.Path)
		}
	}
	return out
}
