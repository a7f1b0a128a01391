package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/veridex/lookup-gateway/authenticator"
	"github.com/veridex/lookup-gateway/config"
	"github.com/veridex/lookup-gateway/controllers"
	"github.com/veridex/lookup-gateway/database"
	"github.com/veridex/lookup-gateway/lookup"
	"github.com/veridex/lookup-gateway/metrics"
	gatewaymiddleware "github.com/veridex/lookup-gateway/middleware"
	"github.com/veridex/lookup-gateway/repositories"
	"github.com/veridex/lookup-gateway/services"
)

func main() {
	// .env is optional outside development
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize repositories
	repos := repositories.NewRepositories(db)

	// Initialize the lookup collaborator
	lookupClient, err := lookup.NewHTTPClient(lookup.HTTPConfig{
		BaseURL:      cfg.LookupBaseURL,
		TokenURL:     cfg.LookupTokenURL,
		ClientID:     cfg.LookupClientID,
		ClientSecret: cfg.LookupClientSecret,
	})
	if err != nil {
		log.Fatalf("Failed to initialize lookup client: %v", err)
	}

	// Initialize services
	m := metrics.New()
	srvs := services.NewServices(repos, lookupClient, m, cfg.LookupTimeout)

	// Initialize controllers
	ctrl := controllers.NewControllers(srvs)

	// Initialize the identity oracle, selected once at startup
	verifier, err := newVerifier(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize identity provider: %v", err)
	}

	r := setupRouter(cfg, ctrl, verifier, srvs)

	fmt.Printf("Lookup gateway listening on %s\n", cfg.Addr)
	fmt.Printf("Database: %s\n", cfg.DatabasePath)

	log.Fatal(http.ListenAndServe(cfg.Addr, r))
}

// newVerifier constructs the configured identity provider. The credential
// mode is explicit: service-account file means strict load, bare project
// ID means ambient credentials. Never decided per-request.
func newVerifier(cfg config.Config) (authenticator.Verifier, error) {
	switch cfg.Provider {
	case config.ProviderFirebase:
		if cfg.ServiceAccountFile != "" {
			return authenticator.NewFirebaseProviderWithServiceAccount(cfg.ServiceAccountFile)
		}
		return authenticator.NewFirebaseProvider(cfg.ProjectID)
	case config.ProviderOpenID:
		return authenticator.NewOpenIDProvider(authenticator.OpenIDConfig{
			Issuer:   cfg.OIDCIssuer,
			ClientID: cfg.OIDCClientID,
		})
	default:
		return nil, fmt.Errorf("unknown identity provider %q", cfg.Provider)
	}
}

// setupRouter configures all routes
func setupRouter(cfg config.Config, ctrl *controllers.Controllers, verifier authenticator.Verifier, srvs *services.Services) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(chimiddleware.Compress(5))

	// PUBLIC ROUTES
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status": "healthy", "service": "lookup-gateway"}`)
	})
	r.Handle("/metrics", promhttp.Handler())

	// AUTHENTICATED ROUTES (bearer token required)
	r.Route("/api", func(r chi.Router) {
		r.Use(gatewaymiddleware.RequireAuth(verifier, srvs.Identity))

		r.Post("/lookup", ctrl.Lookup.Lookup)
		r.Get("/history", ctrl.Lookup.History)
		r.Get("/me", ctrl.Lookup.Me)
	})

	// ADMIN ROUTES (separate trust boundary, key-gated)
	r.Route("/admin", func(r chi.Router) {
		r.Use(gatewaymiddleware.RequireAdmin(cfg.AdminKey))

		r.Get("/users", ctrl.Admin.ListUsers)
		r.Post("/credits", ctrl.Admin.AdjustCredits)

		r.Route("/protected", func(r chi.Router) {
			r.Get("/", ctrl.Admin.ListProtected)
			r.Post("/", ctrl.Admin.AddProtected)
			r.Delete("/{number}", ctrl.Admin.RemoveProtected)
		})
	})

	return r
}
