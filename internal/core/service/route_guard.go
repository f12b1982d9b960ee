package service

import (
	"github.com/roseyco/agency-portal/internal/core/domain"
	"github.com/roseyco/agency-portal/internal/pkg/metrics"
)

// BrandName is shown at the top of every shell.
const BrandName = "Rosey Co"

// GuardState is the session state a navigation is evaluated in.
type GuardState string

const (
	StateLoading         GuardState = "loading"
	StateUnauthenticated GuardState = "unauthenticated"
	StateAuthenticated   GuardState = "authenticated"
)

// Outcome is what the caller must do with a Decision.
type Outcome string

const (
	OutcomeRender   Outcome = "render"
	OutcomeRedirect Outcome = "redirect"
	// OutcomeWait means show a waiting indicator and ask again.
	OutcomeWait Outcome = "wait"
)

// SessionHandle is the read side of a SessionProvider.
type SessionHandle interface {
	State() ProviderState
}

// UserBadge is the identity footer of the shell.
type UserBadge struct {
	Name      string `json:"name"`
	Initial   string `json:"initial"`
	RoleLabel string `json:"role_label"`
	Avatar    string `json:"avatar,omitempty"`
}

// ShellView is the layout wrapped around an authenticated page.
type ShellView struct {
	Brand    string                     `json:"brand"`
	Role     domain.Role                `json:"role"`
	User     UserBadge                  `json:"user"`
	Sections []domain.NavigationSection `json:"sections"`
	Actions  []domain.NavigationAction  `json:"actions"`
}

// Decision is the result of evaluating one navigation.
type Decision struct {
	State    GuardState `json:"state"`
	Outcome  Outcome    `json:"outcome"`
	Path     string     `json:"path"`
	Location string     `json:"location"`
	// Replace asks the client to replace the history entry instead of pushing one.
	Replace bool       `json:"replace"`
	Shell   *ShellView `json:"shell,omitempty"`
	Page    *Page      `json:"page,omitempty"`
}

// RouteGuard gates the protected shells and composes the layout.
type RouteGuard struct {
	session SessionHandle
}

func NewRouteGuard(session SessionHandle) *RouteGuard {
	return &RouteGuard{session: session}
}

func stateOf(st ProviderState) GuardState {
	switch {
	case st.Loading:
		return StateLoading
	case st.Session == nil:
		return StateUnauthenticated
	default:
		return StateAuthenticated
	}
}

// Resolve evaluates a navigation to rawPath against the current session.
func (g *RouteGuard) Resolve(rawPath string) Decision {
	path := NormalizePath(rawPath)
	st := g.session.State()
	state := stateOf(st)

	d := g.resolve(path, state, st.Session)
	metrics.GuardDecisionsTotal.WithLabelValues(string(d.State), string(d.Outcome)).Inc()
	return d
}

func (g *RouteGuard) resolve(path string, state GuardState, sess *domain.Session) Decision {
	r := matchRoute(path)

	switch r.kind {
	case routeLogin:
		return Decision{
			State:    state,
			Outcome:  OutcomeRender,
			Path:     path,
			Location: path,
			Page:     &Page{Key: "login", Title: "Portal Login", Path: LoginPath},
		}
	case routeUnknown:
		return redirect(state, path, LoginPath)
	}

	switch state {
	case StateLoading:
		return Decision{State: state, Outcome: OutcomeWait, Path: path, Location: path}
	case StateUnauthenticated:
		return redirect(state, path, LoginPath)
	}

	if r.shell.Owner != sess.Role {
		return redirect(state, path, HomeFor(sess.Role))
	}
	if r.kind == routeIndex {
		return redirect(state, path, r.shell.Home())
	}

	page := r.page
	return Decision{
		State:    state,
		Outcome:  OutcomeRender,
		Path:     path,
		Location: path,
		Shell:    composeShell(sess, path),
		Page:     &page,
	}
}

func redirect(state GuardState, from, to string) Decision {
	return Decision{State: state, Outcome: OutcomeRedirect, Path: from, Location: to, Replace: true}
}

func composeShell(sess *domain.Session, path string) *ShellView {
	return &ShellView{
		Brand: BrandName,
		Role:  sess.Role,
		User: UserBadge{
			Name:      sess.Name,
			Initial:   sess.Initial(),
			RoleLabel: sess.Role.Label(),
			Avatar:    sess.Avatar,
		},
		Sections: NavigationFor(sess.Role, path),
		Actions:  []domain.NavigationAction{LogoutAction},
	}
}
