package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"Alcove/internal/api/handlers/authredirect"
	"Alcove/internal/api/handlers/feed"
	"Alcove/internal/api/handlers/session"
	"Alcove/internal/api/middleware"
	"Alcove/internal/api/routes"
	"Alcove/internal/backends"
	"Alcove/internal/config"
	"Alcove/internal/core/accounts"
	"Alcove/internal/core/auth"
	"Alcove/internal/core/oauth"
	postgresRepo "Alcove/internal/db/postgres"
	"Alcove/internal/schemas"
)

// knownInstances seeds the login directory; probes merge into it.
var knownInstances = []auth.Instance{
	{Host: "lemmy.world", URL: "https://lemmy.world", Name: "Lemmy World", Software: schemas.SoftwareLemmy},
	{Host: "lemmy.ml", URL: "https://lemmy.ml", Name: "Lemmy", Software: schemas.SoftwareLemmy},
	{Host: "programming.dev", URL: "https://programming.dev", Name: "Programming.dev", Software: schemas.SoftwareLemmy},
	{Host: "piefed.social", URL: "https://piefed.social", Name: "PieFed Social", Software: schemas.SoftwarePieFed},
	{Host: "feddit.online", URL: "https://feddit.online", Name: "Feddit", Software: schemas.SoftwarePieFed},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})))

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("Failed to set goose dialect:", err)
	}
	if err := goose.Up(db, "internal/db/migrations"); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}

	accountRepo := postgresRepo.NewAccountRepository(db)
	accountService, err := accounts.NewService(context.Background(), accountRepo, cfg.Client.DefaultInstance)
	if err != nil {
		log.Fatal("Failed to load accounts:", err)
	}

	provider := backends.NewProvider(accountService, cfg.Client.UserAgent, httpClient)
	orchestrator := auth.NewOrchestrator(accountService)
	directory := auth.NewDirectory(knownInstances, func(ctx context.Context, instanceURL string) (auth.Instance, error) {
		probe, err := provider.ProbeInstance(ctx, instanceURL)
		if err != nil {
			return auth.Instance{}, err
		}
		parsed, err := url.Parse(instanceURL)
		if err != nil {
			return auth.Instance{}, err
		}
		return auth.Instance{
			Host:     parsed.Host,
			URL:      instanceURL,
			Name:     parsed.Host,
			Software: probe.Software,
		}, nil
	})

	stateRepo := postgresRepo.NewOAuthStateRepository(db)
	oauthService := oauth.NewService(stateRepo, accountService, httpClient, cfg.HTTP.PublicURL, cfg.Client.UserAgent)
	go sweepExpiredStates(stateRepo)

	cookieStore := sessions.NewCookieStore([]byte(cfg.Session.Secret))

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)

	// Global budget; auth routes add their own stricter one.
	rateLimiter := middleware.NewRateLimiter(100, 1*time.Minute)
	r.Use(rateLimiter.Middleware)

	routes.RegisterSessionRoutes(r, session.NewHandler(orchestrator, accountService, provider, directory))
	routes.RegisterOAuthRoutes(r, authredirect.NewHandler(oauthService, provider, cookieStore))
	routes.RegisterFeedRoutes(r, feed.NewHandler(provider))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	slog.Info("gateway starting",
		slog.String("addr", cfg.HTTP.Address()),
		slog.String("public_url", cfg.HTTP.PublicURL))
	log.Fatal(http.ListenAndServe(cfg.HTTP.Address(), r))
}

// sweepExpiredStates clears abandoned OAuth attempts so the table does
// not grow without bound.
func sweepExpiredStates(repo *postgresRepo.OAuthStateRepo) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		n, err := repo.DeleteExpired(ctx)
		cancel()
		if err != nil {
			slog.Warn("failed to sweep expired oauth states", slog.String("error", err.Error()))
			continue
		}
		if n > 0 {
			slog.Debug("swept expired oauth states", slog.Int64("count", n))
		}
	}
}
