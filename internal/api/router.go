package api

import (
	"database/sql"
	"net/http"

	"github.com/cortexai/cortex-api/internal/api/handlers"
	"github.com/cortexai/cortex-api/internal/auth"
	"github.com/cortexai/cortex-api/internal/config"
	"github.com/cortexai/cortex-api/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewBaseRouter creates a Chi router carrying the middleware stack and the
// liveness probe shared by every service.
func NewBaseRouter(corsCfg config.CORS) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(CORSOptions(corsCfg)))

	r.Get("/health", handlers.Health)
	return r
}

// Services bundles what the backend routes depend on.
type Services struct {
	Auth       services.AuthServiceProvider
	Users      services.UserServiceProvider
	Sessions   services.SessionServiceProvider
	Onboarding services.OnboardingServiceProvider
}

// NewServices wires the database-backed services.
func NewServices(db *sql.DB, cfg *config.Config) Services {
	users := services.NewUserService(db)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL())
	return Services{
		Auth:       services.NewAuthService(users, tokens, cfg.BcryptCost),
		Users:      users,
		Sessions:   services.NewSessionService(db),
		Onboarding: services.NewOnboardingService(db),
	}
}

// NewRouter creates the backend router.
func NewRouter(corsCfg config.CORS, svc Services) *chi.Mux {
	r := NewBaseRouter(corsCfg)

	authHandler := handlers.NewAuthHandler(svc.Auth)
	userHandler := handlers.NewUserHandler(svc.Users)
	sessionHandler := handlers.NewSessionHandler(svc.Sessions)
	onboardingHandler := handlers.NewOnboardingHandler(svc.Onboarding)
	requireUser := auth.RequireUser(svc.Auth)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(requireUser)
		r.Get("/", userHandler.List)
		r.Get("/me", userHandler.GetMe)
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Use(requireUser)
		r.Get("/", sessionHandler.List)
		r.Post("/", sessionHandler.Create)
	})

	r.Route("/onboarding", func(r chi.Router) {
		r.Post("/", onboardingHandler.Upsert)
		r.Get("/{clientUserID}", onboardingHandler.Get)
	})

	return r
}

// NewEmotionRouter creates the router of the emotion analysis service.
func NewEmotionRouter(corsCfg config.CORS) http.Handler {
	r := NewBaseRouter(corsCfg)
	r.Post("/analyze", handlers.Analyze)
	return r
}

// NewRecommendationRouter creates the router of the recommendation service.
func NewRecommendationRouter(corsCfg config.CORS) http.Handler {
	r := NewBaseRouter(corsCfg)
	r.Post("/recommend", handlers.Recommend)
	return r
}
