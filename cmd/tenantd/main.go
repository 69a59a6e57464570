package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/tenantflow"
	"github.com/dmitrymomot/tenantflow/pkg/routepolicy"
	"github.com/dmitrymomot/tenantflow/pkg/tenant"
)

type serverConfig struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	Env             string        `env:"APP_ENV" envDefault:"development"`
	RedisURL        string        `env:"REDIS_URL"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func main() {
	// The .env file might not exist and that's ok.
	_ = godotenv.Load()

	var srvCfg serverConfig
	if err := env.Parse(&srvCfg); err != nil {
		slog.Error("failed to parse server config", slog.Any("error", err))
		os.Exit(1)
	}

	var cfg tenantflow.Config
	if err := env.Parse(&cfg); err != nil {
		slog.Error("failed to parse engine config", slog.Any("error", err))
		os.Exit(1)
	}

	log := newLogger(srvCfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, srvCfg, cfg, log); err != nil {
		log.Error("tenantd exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func newLogger(environment string) *slog.Logger {
	if environment == "production" || environment == "staging" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func run(ctx context.Context, srvCfg serverConfig, cfg tenantflow.Config, log *slog.Logger) error {
	directory, cleanup, err := newDirectory(ctx, srvCfg, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := []tenantflow.Option{tenantflow.WithLogger(log)}

	if srvCfg.RedisURL != "" {
		redisOpt, err := redis.ParseURL(srvCfg.RedisURL)
		if err != nil {
			return err
		}
		client := redis.NewClient(redisOpt)
		defer client.Close() //nolint:errcheck
		if err := client.Ping(ctx).Err(); err != nil {
			return err
		}
		opts = append(opts, tenantflow.WithCache(tenant.NewRedisCache(client, 0)))
		log.Info("using redis tenant cache")
	}

	if cfg.PolicyRulesFile != "" {
		rules, err := routepolicy.LoadRules(cfg.PolicyRulesFile)
		if err != nil {
			return err
		}
		opts = append(opts, tenantflow.WithClassifier(routepolicy.NewClassifier(rules)))
	}

	engine := tenantflow.New(cfg, directory, opts...)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Everything below resolves the tenant per request.
	r.Group(func(r chi.Router) {
		r.Use(engine.Middleware())

		// Read-only query surface for page consumers.
		r.Get("/api/resolution/state", func(w http.ResponseWriter, req *http.Request) {
			state := engine.Current()
			payload := map[string]any{
				"phase":       state.Phase.String(),
				"identifier":  state.Identifier,
				"invite_code": state.InviteCode,
				"loading":     state.Loading(),
			}
			if state.Tenant != nil {
				payload["tenant"] = state.Tenant
			}
			if state.Err != nil {
				payload["error"] = "failed to detect tenant"
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(payload)
		})

		r.Get("/api/resolution/theme.css", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "text/css; charset=utf-8")
			_, _ = w.Write([]byte(engine.Theme().CSSVariables()))
		})

		r.Post("/api/resolution/redetect", func(w http.ResponseWriter, req *http.Request) {
			outcome := engine.Redetect(req.Context())
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"phase": outcome.State.Phase.String(),
			})
		})
	})

	srv := &http.Server{
		Addr:              srvCfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("tenantd listening", slog.String("addr", srvCfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), srvCfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newDirectory(ctx context.Context, srvCfg serverConfig, cfg tenantflow.Config, log *slog.Logger) (tenant.Directory, func(), error) {
	if srvCfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, srvCfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info("using postgres tenant directory")
		return tenant.NewPostgresDirectory(pool), pool.Close, nil
	}

	if cfg.APIBaseURL == "" {
		return nil, nil, errors.New("either TENANT_API_BASE_URL or DATABASE_URL must be set")
	}
	return tenant.NewHTTPDirectory(cfg.APIBaseURL, tenant.WithDirectoryLogger(log)), func() {}, nil
}
