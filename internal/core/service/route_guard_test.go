package service

import (
	"testing"

	"github.com/roseyco/agency-portal/internal/core/domain"
)

type fixedHandle ProviderState

func (h fixedHandle) State() ProviderState { return ProviderState(h) }

var (
	loadingHandle = fixedHandle{Loading: true}
	anonHandle    = fixedHandle{}
	adminHandle   = fixedHandle{Session: &domain.Session{ID: "1", Name: "Allan Smith", Email: "a@b.com", Role: domain.RoleAdmin}}
	clientHandle  = fixedHandle{Session: &domain.Session{ID: "1", Name: "Client User", Email: "c@d.com", Role: domain.RoleClient}}
)

func TestRouteGuard_UnauthenticatedRedirectsToLogin(t *testing.T) {
	g := NewRouteGuard(anonHandle)
	for _, p := range []string{"/admin/dashboard", "/dashboard", "/admin", "/", "/admin/vault", "/help"} {
		d := g.Resolve(p)
		if d.State != StateUnauthenticated || d.Outcome != OutcomeRedirect || d.Location != LoginPath || !d.Replace {
			t.Fatalf("%s: expected replace-redirect to /login, got %+v", p, d)
		}
		if d.Shell != nil || d.Page != nil {
			t.Fatalf("%s: protected content leaked to anonymous user", p)
		}
	}
}

func TestRouteGuard_UnknownPathFallsBackToLogin(t *testing.T) {
	for name, h := range map[string]fixedHandle{"anonymous": anonHandle, "admin": adminHandle, "client": clientHandle, "loading": loadingHandle} {
		for _, p := range []string{"/does-not-exist", "/admin/nope", "/dashboard/extra", "/documents"} {
			d := NewRouteGuard(h).Resolve(p)
			if d.Outcome != OutcomeRedirect || d.Location != LoginPath || !d.Replace {
				t.Fatalf("%s %s: expected redirect to /login, got %+v", name, p, d)
			}
		}
	}
}

func TestRouteGuard_LoadingWaits(t *testing.T) {
	d := NewRouteGuard(loadingHandle).Resolve("/admin/dashboard")
	if d.State != StateLoading || d.Outcome != OutcomeWait {
		t.Fatalf("expected wait while loading, got %+v", d)
	}
	if d.Location != "/admin/dashboard" || d.Shell != nil {
		t.Fatalf("loading must not navigate or render, got %+v", d)
	}
}

func TestRouteGuard_LoginIsPublic(t *testing.T) {
	for _, h := range []fixedHandle{anonHandle, loadingHandle, adminHandle} {
		d := NewRouteGuard(h).Resolve("/login/")
		if d.Outcome != OutcomeRender || d.Page == nil || d.Page.Key != "login" || d.Shell != nil {
			t.Fatalf("expected login page, got %+v", d)
		}
	}
}

func TestRouteGuard_AuthenticatedRendersShell(t *testing.T) {
	d := NewRouteGuard(adminHandle).Resolve("/admin/clients")
	if d.State != StateAuthenticated || d.Outcome != OutcomeRender {
		t.Fatalf("expected render, got %+v", d)
	}
	if d.Page == nil || d.Page.Key != "clients" || d.Page.Data != "/api/workspace/admin/clients" {
		t.Fatalf("unexpected page: %+v", d.Page)
	}
	if d.Shell == nil || d.Shell.Brand != BrandName || d.Shell.Role != domain.RoleAdmin {
		t.Fatalf("unexpected shell: %+v", d.Shell)
	}
	if d.Shell.User.Name != "Allan Smith" || d.Shell.User.Initial != "A" || d.Shell.User.RoleLabel != "Admin User" {
		t.Fatalf("unexpected user badge: %+v", d.Shell.User)
	}
	if len(d.Shell.Actions) != 1 || d.Shell.Actions[0].ID != "logout" {
		t.Fatalf("expected logout action, got %+v", d.Shell.Actions)
	}

	var active []string
	for _, s := range d.Shell.Sections {
		for _, e := range s.Entries {
			if e.Active {
				active = append(active, e.Path)
			}
		}
	}
	if len(active) != 1 || active[0] != "/admin/clients" {
		t.Fatalf("expected /admin/clients highlighted, got %v", active)
	}
}

func TestRouteGuard_IndexRedirectsToDashboard(t *testing.T) {
	if d := NewRouteGuard(adminHandle).Resolve("/admin/"); d.Outcome != OutcomeRedirect || d.Location != "/admin/dashboard" || !d.Replace {
		t.Fatalf("expected /admin -> /admin/dashboard, got %+v", d)
	}
	if d := NewRouteGuard(clientHandle).Resolve(""); d.Outcome != OutcomeRedirect || d.Location != "/dashboard" {
		t.Fatalf("expected / -> /dashboard, got %+v", d)
	}
}

func TestRouteGuard_ForeignShellRedirectsHome(t *testing.T) {
	if d := NewRouteGuard(clientHandle).Resolve("/admin/vault"); d.Outcome != OutcomeRedirect || d.Location != "/dashboard" {
		t.Fatalf("client must be sent to own dashboard, got %+v", d)
	}
	if d := NewRouteGuard(adminHandle).Resolve("/messages"); d.Outcome != OutcomeRedirect || d.Location != "/admin/dashboard" {
		t.Fatalf("admin must be sent to own dashboard, got %+v", d)
	}
	if d := NewRouteGuard(clientHandle).Resolve("/admin"); d.Location != "/dashboard" {
		t.Fatalf("client on admin index must land on own dashboard, got %+v", d)
	}
}

func TestRouteGuard_EveryShellPageRenders(t *testing.T) {
	for _, tc := range []struct {
		handle fixedHandle
		shell  Shell
	}{{adminHandle, adminShell}, {clientHandle, clientShell}} {
		for _, p := range tc.shell.Pages() {
			d := NewRouteGuard(tc.handle).Resolve(p.Path)
			if d.Outcome != OutcomeRender || d.Page == nil || d.Page.Path != p.Path {
				t.Fatalf("%s: expected render, got %+v", p.Path, d)
			}
		}
	}
}

func TestNormalizePath(t *testing.T) {
	cases := map[string]string{
		"":                   "/",
		"/":                  "/",
		"admin/dashboard":    "/admin/dashboard",
		"/admin/dashboard/":  "/admin/dashboard",
		"/tasks?filter=open": "/tasks",
		"/help#top":          "/help",
		"//":                 "/",
	}
	for in, want := range cases {
		if got := NormalizePath(in); got != want {
			t.Fatalf("NormalizePath(%q) = %q, want %q", in, got, want)
		}
	}
}
