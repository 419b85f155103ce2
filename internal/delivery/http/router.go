package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gdugdh24/glicosaude/internal/delivery/http/handler"
	"github.com/gdugdh24/glicosaude/internal/delivery/http/middleware"
	"github.com/gdugdh24/glicosaude/internal/gate"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Router struct {
	authHandler       *handler.AuthHandler
	profileHandler    *handler.ProfileHandler
	readingHandler    *handler.ReadingHandler
	onboardingHandler *handler.OnboardingHandler
	insightsHandler   *handler.InsightsHandler
	pageHandler       *handler.PageHandler
	authMiddleware    *middleware.AuthMiddleware
	profiles          middleware.ProfileLookup
	authLimiter       *middleware.RateLimiter
	allowedOrigins    []string
	log               *zap.Logger
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	readingHandler *handler.ReadingHandler,
	onboardingHandler *handler.OnboardingHandler,
	insightsHandler *handler.InsightsHandler,
	pageHandler *handler.PageHandler,
	authMiddleware *middleware.AuthMiddleware,
	profiles middleware.ProfileLookup,
	authLimiter *middleware.RateLimiter,
	allowedOrigins []string,
	log *zap.Logger,
) *Router {
	return &Router{
		authHandler:       authHandler,
		profileHandler:    profileHandler,
		readingHandler:    readingHandler,
		onboardingHandler: onboardingHandler,
		insightsHandler:   insightsHandler,
		pageHandler:       pageHandler,
		authMiddleware:    authMiddleware,
		profiles:          profiles,
		authLimiter:       authLimiter,
		allowedOrigins:    allowedOrigins,
		log:               log,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(r.log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     r.allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.limit(), r.authHandler.Register)
			auth.POST("/login", r.limit(), r.authHandler.Login)
			auth.POST("/logout", r.authMiddleware.RequireAuth(), r.authHandler.Logout)
			auth.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.Me)
		}

		// Protected routes
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			profile := protected.Group("/profile")
			{
				profile.GET("/me", r.profileHandler.GetMyProfile)
				profile.PUT("/me", r.profileHandler.UpsertMyProfile)
				profile.PATCH("/me", r.profileHandler.UpdateMyProfile)
				profile.DELETE("/me", r.profileHandler.DeleteMyProfile)
			}

			readings := protected.Group("/readings")
			{
				readings.GET("", r.readingHandler.ListReadings)
				readings.POST("", r.readingHandler.CreateReading)
				readings.DELETE("/:id", r.readingHandler.DeleteReading)
			}

			onboarding := protected.Group("/onboarding")
			{
				onboarding.GET("", r.onboardingHandler.GetWizard)
				onboarding.PATCH("", r.onboardingHandler.UpdateDraft)
				onboarding.POST("/next", r.onboardingHandler.Next)
				onboarding.POST("/back", r.onboardingHandler.Back)
				onboarding.POST("/complete", r.onboardingHandler.Complete)
			}

			protected.POST("/insights", r.insightsHandler.GenerateInsight)
		}
	}

	// App routes. Which of them render depends on the caller's profile.
	pages := []gin.HandlerFunc{
		r.authMiddleware.OptionalAuth(),
		middleware.OnboardingGate(r.profiles, r.log),
		r.pageHandler.Serve,
	}
	for _, route := range append(append([]string{}, gate.MainRoutes...), gate.RouteOnboarding) {
		router.GET(route, pages...)
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") || c.Request.Method != http.MethodGet {
			c.AbortWithStatusJSON(http.StatusNotFound, handler.ErrorResponse{
				Error: "not found",
			})
			return
		}
		c.Next()
	}, pages[0], pages[1], pages[2])

	return router
}

func (r *Router) limit() gin.HandlerFunc {
	if r.authLimiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return r.authLimiter.Middleware()
}
