package container

import (
	"context"
	"fmt"
	"time"

	"github.com/gdugdh24/glicosaude/internal/config"
	"github.com/gdugdh24/glicosaude/internal/delivery/http"
	"github.com/gdugdh24/glicosaude/internal/delivery/http/handler"
	"github.com/gdugdh24/glicosaude/internal/delivery/http/middleware"
	"github.com/gdugdh24/glicosaude/internal/infrastructure/database"
	"github.com/gdugdh24/glicosaude/internal/infrastructure/gemini"
	"github.com/gdugdh24/glicosaude/internal/infrastructure/server"
	"github.com/gdugdh24/glicosaude/internal/premium"
	"github.com/gdugdh24/glicosaude/internal/repository/postgres"
	"github.com/gdugdh24/glicosaude/internal/repository/rediscache"
	"github.com/gdugdh24/glicosaude/internal/usecase/auth"
	"github.com/gdugdh24/glicosaude/internal/usecase/insights"
	"github.com/gdugdh24/glicosaude/internal/usecase/onboarding"
	"github.com/gdugdh24/glicosaude/internal/usecase/pages"
	"github.com/gdugdh24/glicosaude/internal/usecase/profile"
	"github.com/gdugdh24/glicosaude/internal/usecase/readings"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
	Gemini *gemini.GeminiClient
	Log    *zap.Logger
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Container, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	loc, err := time.LoadLocation(cfg.Server.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("failed to load time zone: %w", err)
	}

	db, err := database.NewPostgresDB(ctx, &cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient, err := database.NewRedisClient(ctx, &cfg.Redis, log)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	c := &Container{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Log:    log,
	}

	// Insights fall back to a canned summary without a Gemini key.
	var generator insights.Generator
	if cfg.Gemini.APIKey != "" {
		geminiClient, err := gemini.NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Warn("Failed to initialize Gemini client, AI insights disabled", zap.Error(err))
		} else {
			c.Gemini = geminiClient
			generator = geminiClient
		}
	}

	catalog, err := premium.Load()
	if err != nil {
		c.Close()
		return nil, err
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	readingRepo := postgres.NewReadingRepository(db)
	readingCache := rediscache.NewReadingCache(redisClient, cfg.Cache.ReadingsTTL)
	draftStore := rediscache.NewDraftStore(redisClient, cfg.Cache.DraftTTL)
	denylist := rediscache.NewTokenDenylist(redisClient)

	// Initialize use cases
	authUseCase := auth.NewAuthUseCase(userRepo, denylist, cfg.JWT.Secret, cfg.JWT.TokenTTL())
	profileUseCase := profile.NewProfileUseCase(profileRepo, draftStore)
	readingsUseCase := readings.NewReadingsUseCase(readingRepo, readingCache, log.Named("readings"))
	onboardingUseCase := onboarding.NewOnboardingUseCase(draftStore, profileUseCase)
	insightsUseCase := insights.NewInsightsUseCase(readingsUseCase, profileUseCase, generator, log.Named("insights"))
	pagesUseCase := pages.NewPagesUseCase(profileUseCase, readingsUseCase, catalog, loc)

	// Initialize router
	router := http.NewRouter(
		handler.NewAuthHandler(authUseCase),
		handler.NewProfileHandler(profileUseCase),
		handler.NewReadingHandler(readingsUseCase),
		handler.NewOnboardingHandler(onboardingUseCase),
		handler.NewInsightsHandler(insightsUseCase),
		handler.NewPageHandler(pagesUseCase, onboardingUseCase),
		middleware.NewAuthMiddleware(authUseCase),
		profileUseCase,
		middleware.NewRateLimiter(rate.Limit(cfg.Server.AuthRateLimit), cfg.Server.AuthRateBurst),
		cfg.CORS.AllowedOrigins,
		log.Named("http"),
	)

	c.Server = server.NewServer(&cfg.Server, router.Setup(), log.Named("server"))
	return c, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Gemini != nil {
		if err := c.Gemini.Close(); err != nil {
			c.Log.Warn("Error closing Gemini client", zap.Error(err))
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.Warn("Error closing Redis", zap.Error(err))
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
