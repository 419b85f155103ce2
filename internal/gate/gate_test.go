package gate

import (
	"testing"

	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/stretchr/testify/assert"
)

var requestedPaths = []string{
	"/", "/registro", "/historico", "/premium", "/perfil", "/onboarding", "/instalar",
	"/nao-existe", "/historico/", "/registro?from=nav", "",
}

func TestResolveWhileLoading(t *testing.T) {
	for _, path := range requestedPaths {
		d := Resolve(State{Loading: true, Profile: &domain.UserProfile{OnboardingCompleted: true}}, path)
		assert.Equal(t, KindSpinner, d.Kind, path)
		assert.Empty(t, d.Path)
	}
}

func TestResolveRedirectsToOnboardingUntilComplete(t *testing.T) {
	profiles := map[string]*domain.UserProfile{
		"absent":     nil,
		"incomplete": {Name: "Ana", OnboardingCompleted: false},
	}

	for name, profile := range profiles {
		t.Run(name, func(t *testing.T) {
			state := State{Profile: profile}
			for _, path := range requestedPaths {
				d := Resolve(state, path)
				switch Normalize(path) {
				case RouteOnboarding, RouteInstalar:
					assert.Equal(t, KindRender, d.Kind, path)
					assert.Equal(t, Normalize(path), d.Path)
				default:
					assert.Equal(t, KindRedirect, d.Kind, path)
					assert.Equal(t, RouteOnboarding, d.Path, path)
				}
				assert.False(t, d.ShowBottomNav, path)
			}
		})
	}
}

func TestResolveCompleteProfile(t *testing.T) {
	state := State{Profile: &domain.UserProfile{OnboardingCompleted: true}}

	d := Resolve(state, RouteOnboarding)
	assert.Equal(t, Decision{Kind: KindRedirect, Path: RouteHome, ShowBottomNav: true}, d)

	for _, route := range MainRoutes {
		d := Resolve(state, route)
		assert.Equal(t, KindRender, d.Kind, route)
		assert.Equal(t, route, d.Path)
		assert.True(t, d.ShowBottomNav)
	}

	d = Resolve(state, "/nao-existe")
	assert.Equal(t, KindNotFound, d.Kind)
}

func TestStateMode(t *testing.T) {
	assert.Equal(t, ModeLoading, State{Loading: true}.Mode())
	assert.Equal(t, ModeOnboarding, State{}.Mode())
	assert.Equal(t, ModeMain, State{Profile: &domain.UserProfile{OnboardingCompleted: true}}.Mode())
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "/", Normalize(""))
	assert.Equal(t, "/", Normalize("/"))
	assert.Equal(t, "/historico", Normalize("historico/"))
	assert.Equal(t, "/registro", Normalize("/registro?x=1#top"))
}
