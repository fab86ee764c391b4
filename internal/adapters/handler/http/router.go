package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

type Handlers struct {
	Auth           *AuthHandler
	Users          *UserHandler
	Constituencies *ConstituencyHandler
	Parties        *PartyHandler
	Candidates     *CandidateHandler
	Votes          *VoteHandler
	Stats          *StatsHandler
}

type RouterConfig struct {
	AllowedOrigins []string
	Tokens         ports.TokenValidator
	Metrics        *Metrics
	// Gatherer backs GET /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

func NewHandler(h Handlers, cfg RouterConfig) http.Handler {
	logger := resolveLogger(cfg.Logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.middleware)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeData(w, logger, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	authn := authenticate(cfg.Tokens, logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/google", h.Auth.GoogleLogin)
			r.Post("/refresh", h.Auth.Refresh)
			r.Post("/logout", h.Auth.Logout)
			r.With(authn).Get("/me", h.Auth.Me)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authn, requireRole(logger, domain.RoleAdmin))

			r.Get("/constituencies", h.Constituencies.List)
			r.Post("/constituencies", h.Constituencies.Create)
			r.Delete("/constituencies/{id}", h.Constituencies.Delete)

			r.Get("/users", h.Users.List)
			r.Get("/users/{id}", h.Users.Get)
			r.Get("/users/{id}/role", h.Users.GetRole)
			r.Patch("/users/{id}/role", h.Users.UpdateRole)
			r.Delete("/users/{id}", h.Users.Delete)

			r.Get("/stats", h.Stats.Admin)
		})

		r.Route("/ec", func(r chi.Router) {
			r.Use(authn, requireRole(logger, domain.RoleEC, domain.RoleAdmin))

			r.Get("/parties", h.Parties.List)
			r.Post("/parties", h.Parties.Create)
			r.Get("/parties/{id}", h.Parties.Get)
			r.Put("/parties/{id}", h.Parties.Update)
			r.Delete("/parties/{id}", h.Parties.Delete)

			r.Get("/candidates", h.Candidates.List)
			r.Post("/candidates", h.Candidates.Create)
			r.Get("/candidates/{id}", h.Candidates.Get)
			r.Put("/candidates/{id}", h.Candidates.Update)
			r.Delete("/candidates/{id}", h.Candidates.Delete)

			r.Route("/control", func(r chi.Router) {
				r.Get("/constituencies", h.Constituencies.List)
				r.Post("/open-all", h.Constituencies.OpenAll)
				r.Post("/close-all", h.Constituencies.CloseAll)
				r.Patch("/{id}", h.Constituencies.SetPollStatus)
			})

			r.Get("/stats", h.Stats.EC)
		})

		r.Route("/voter", func(r chi.Router) {
			r.Use(authn, requireRole(logger, domain.RoleVoter, domain.RoleEC, domain.RoleAdmin))

			r.Get("/constituency", h.Votes.Constituency)
			r.Get("/candidates", h.Votes.Candidates)
			r.Get("/vote", h.Votes.MyVote)
			r.Post("/vote", h.Votes.Cast)
			r.Put("/vote", h.Votes.Change)
			r.Get("/my-vote", h.Votes.MyVote)
		})

		r.Route("/public", func(r chi.Router) {
			r.Get("/results", h.Stats.Results)
			r.Get("/stats", h.Stats.Dashboard)
			r.Get("/parties", h.Parties.List)
			r.Get("/constituencies", h.Constituencies.List)
		})
	})

	return r
}
