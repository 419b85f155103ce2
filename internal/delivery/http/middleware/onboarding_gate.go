package middleware

import (
	"context"
	"net/http"

	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/gdugdh24/glicosaude/internal/gate"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DecisionKey is where OnboardingGate leaves its gate.Decision.
const DecisionKey = "gate_decision"

type ProfileLookup interface {
	GetMyProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
}

// OnboardingGate resolves the requested app route against the caller's
// profile. Anonymous callers are treated as having no profile. Redirects use
// 302 so the requested entry is never rendered.
func OnboardingGate(profiles ProfileLookup, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var profile *domain.UserProfile
		if userID := c.GetString("user_id"); userID != "" {
			p, err := profiles.GetMyProfile(c.Request.Context(), userID)
			if err != nil {
				log.Error("Failed to load profile for gate", zap.String("user_id", userID), zap.Error(err))
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
					"error":   "profile unavailable",
					"message": "Carregando...",
				})
				return
			}
			profile = p
		}

		decision := gate.Resolve(gate.State{Profile: profile}, c.Request.URL.Path)
		switch decision.Kind {
		case gate.KindRedirect:
			c.Redirect(http.StatusFound, decision.Path)
			c.Abort()
		case gate.KindNotFound:
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":           "page not found",
				"path":            decision.Path,
				"show_bottom_nav": decision.ShowBottomNav,
			})
		default:
			c.Set(DecisionKey, decision)
			c.Next()
		}
	}
}
