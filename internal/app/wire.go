package app

import (
	"log/slog"
	"time"

	"github.com/foosball/league/internal/auth"
	"github.com/foosball/league/internal/guard"
	"github.com/foosball/league/internal/handler"
	"github.com/foosball/league/internal/repository"
	"github.com/foosball/league/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RouterDeps holds all dependencies needed by NewRouter.
type RouterDeps struct {
	Pool   *pgxpool.Pool
	JWTMgr *auth.JWTManager
	Logger *slog.Logger

	BcryptCost         int
	AllowedOrigins     []string
	RateLimitPerMinute int
}

// NewRouter assembles the league API router with all routes and middleware.
func NewRouter(deps RouterDeps) chi.Router {
	pool := deps.Pool
	logger := deps.Logger

	// Repositories
	playerRepo := repository.NewPlayerRepository()
	tableRepo := repository.NewTableRepository()
	gameRepo := repository.NewGameRepository()
	perfRepo := repository.NewPerformanceRepository()
	outboxRepo := repository.NewOutboxRepository()

	// Services
	playerSvc := service.NewPlayerService(pool, playerRepo, outboxRepo, deps.BcryptCost)
	tableSvc := service.NewTableService(pool, tableRepo, outboxRepo)
	gameSvc := service.NewGameService(pool, gameRepo, tableRepo, outboxRepo)
	perfSvc := service.NewPerformanceService(pool, perfRepo, gameRepo, playerRepo, outboxRepo)
	authSvc := service.NewAuthService(pool, playerRepo, deps.JWTMgr, guard.NewLockout(guard.MaxAttempts, guard.LockoutWindow))

	// Handlers
	players := handler.NewPlayerHandler(playerSvc)
	tables := handler.NewTableHandler(tableSvc)
	games := handler.NewGameHandler(gameSvc)
	perfs := handler.NewPerformanceHandler(perfSvc)
	authHandler := handler.NewAuthHandler(authSvc, playerSvc)

	r := newBaseRouter(logger, deps.AllowedOrigins)

	r.Get("/health", handler.HealthHandler(pool))

	r.Route("/api", func(r chi.Router) {
		if deps.RateLimitPerMinute > 0 {
			r.Use(httprate.LimitByIP(deps.RateLimitPerMinute, time.Minute))
		}

		r.Get("/", handler.APIRootHandler)

		r.Route("/players", func(r chi.Router) {
			r.Get("/", players.List)
			r.Post("/", players.Create)
			r.Get("/{id}", players.Get)
			r.Put("/{id}", players.Replace)
			r.Patch("/{id}", players.Patch)
			r.Delete("/{id}", players.Delete)
		})

		r.Route("/foosball-tables", func(r chi.Router) {
			r.Get("/", tables.List)
			r.Post("/", tables.Create)
			r.Get("/{tableID}", tables.Get)
			r.Put("/{tableID}", tables.Replace)
			r.Patch("/{tableID}", tables.Patch)
			r.Delete("/{tableID}", tables.Delete)
		})

		r.Route("/games", func(r chi.Router) {
			r.Get("/", games.List)
			r.Post("/", games.Create)
			r.Get("/{id}", games.Get)
			r.Put("/{id}", games.Replace)
			r.Patch("/{id}", games.Patch)
			r.Delete("/{id}", games.Delete)
		})

		r.Route("/performances", func(r chi.Router) {
			r.Get("/", perfs.List)
			r.Post("/", perfs.Create)
			r.Get("/{id}", perfs.Get)
			r.Put("/{id}", perfs.Replace)
			r.Patch("/{id}", perfs.Patch)
			r.Delete("/{id}", perfs.Delete)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.With(auth.Authenticate(deps.JWTMgr)).Get("/me", authHandler.Me)
		})
	})

	return r
}

// ChatDeps holds the dependencies of the chatbot service.
type ChatDeps struct {
	Generator      handler.Generator
	Logger         *slog.Logger
	AllowedOrigins []string
}

// NewChatRouter assembles the standalone chatbot router.
func NewChatRouter(deps ChatDeps) chi.Router {
	chat := handler.NewChatHandler(deps.Generator, deps.Logger)

	r := newBaseRouter(deps.Logger, deps.AllowedOrigins)
	r.Get("/", chat.Welcome)
	r.Post("/chat", chat.Chat)
	r.Get("/health", handler.LivenessHandler)
	return r
}

// newBaseRouter applies the middleware shared by both services.
// Trailing slashes are optional on every route.
func newBaseRouter(logger *slog.Logger, origins []string) chi.Router {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.CORSWithOrigins(origins...))
	r.Use(handler.JSONContentType)
	r.Use(middleware.StripSlashes)

	return r
}
