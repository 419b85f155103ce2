// Package gate decides which app route a navigation resolves to, depending on
// whether the active profile has finished onboarding.
package gate

import (
	"strings"

	"github.com/gdugdh24/glicosaude/internal/domain"
)

// App routes.
const (
	RouteHome       = "/"
	RouteRegistro   = "/registro"
	RouteHistorico  = "/historico"
	RoutePremium    = "/premium"
	RoutePerfil     = "/perfil"
	RouteOnboarding = "/onboarding"
	RouteInstalar   = "/instalar"
)

// MainRoutes are reachable once onboarding is complete.
var MainRoutes = []string{RouteHome, RouteRegistro, RouteHistorico, RoutePremium, RoutePerfil, RouteInstalar}

// OnboardingRoutes are the only routes reachable before onboarding completes.
var OnboardingRoutes = []string{RouteOnboarding, RouteInstalar}

type Mode int

const (
	ModeLoading Mode = iota
	ModeOnboarding
	ModeMain
)

func (m Mode) String() string {
	switch m {
	case ModeLoading:
		return "loading"
	case ModeOnboarding:
		return "onboarding"
	case ModeMain:
		return "main"
	}
	return "unknown"
}

type Kind int

const (
	KindSpinner Kind = iota
	KindRender
	KindRedirect
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindSpinner:
		return "spinner"
	case KindRender:
		return "render"
	case KindRedirect:
		return "redirect"
	case KindNotFound:
		return "not_found"
	}
	return "unknown"
}

// State is what the gate looks at.
type State struct {
	Loading bool
	Profile *domain.UserProfile
}

// Mode reports which route set is active.
func (s State) Mode() Mode {
	if s.Loading {
		return ModeLoading
	}
	if s.Profile.IsComplete() {
		return ModeMain
	}
	return ModeOnboarding
}

// Decision is the outcome of resolving one path.
type Decision struct {
	Kind Kind
	// Path is the route to render, or the redirect target.
	Path          string
	ShowBottomNav bool
}

// Resolve maps a requested path to a decision. Redirects replace the
// requested entry; they are never rendered.
func Resolve(state State, path string) Decision {
	path = Normalize(path)

	switch state.Mode() {
	case ModeLoading:
		return Decision{Kind: KindSpinner}
	case ModeOnboarding:
		if contains(OnboardingRoutes, path) {
			return Decision{Kind: KindRender, Path: path}
		}
		return Decision{Kind: KindRedirect, Path: RouteOnboarding}
	default:
		if path == RouteOnboarding {
			return Decision{Kind: KindRedirect, Path: RouteHome, ShowBottomNav: true}
		}
		if contains(MainRoutes, path) {
			return Decision{Kind: KindRender, Path: path, ShowBottomNav: true}
		}
		return Decision{Kind: KindNotFound, Path: path, ShowBottomNav: true}
	}
}

// Normalize strips the query, fragment and trailing slash from a path.
func Normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}

func contains(routes []string, path string) bool {
	for _, r := range routes {
		if r == path {
			return true
		}
	}
	return false
}
