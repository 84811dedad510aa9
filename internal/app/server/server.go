package server

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"simpeg/internal/domain/auth"
	"simpeg/internal/domain/pegawai"
	"simpeg/internal/platform/config"
	authhandler "simpeg/internal/transport/http/handlers/auth"
	pegawaihandler "simpeg/internal/transport/http/handlers/pegawai"
	statistikhandler "simpeg/internal/transport/http/handlers/statistik"
	"simpeg/internal/transport/http/middleware"
)

// App bundles the process-wide state: one record store and one account
// registry, built once and handed to every handler.
type App struct {
	Config   config.Config
	Store    *pegawai.Store
	Registry *auth.Registry
	Sessions *auth.Sessions
	Router   http.Handler
}

func New(cfg config.Config) (*App, error) {
	registry := auth.NewRegistry()
	if err := registry.SeedDefaultAdmin(cfg.SeedAdminUsername, cfg.SeedAdminPassword); err != nil {
		return nil, err
	}

	store := pegawai.NewStore()
	sessions := auth.NewSessions()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Auth(cfg.JWTSecret, sessions))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(registry, sessions, cfg.JWTSecret).RegisterRoutes(r)
		pegawaihandler.NewHandler(store, cfg.MaxBodyBytes).RegisterRoutes(r)
		statistikhandler.NewHandler(store, registry).RegisterRoutes(r)
	})

	return &App{Config: cfg, Store: store, Registry: registry, Sessions: sessions, Router: router}, nil
}

func Run() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	app, err := New(cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	log.Printf("SIMPEG server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
