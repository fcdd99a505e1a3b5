package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mckayn10/ai-chat-app/pkg/agent"
	"github.com/mckayn10/ai-chat-app/pkg/auth"
	"github.com/mckayn10/ai-chat-app/pkg/contacts"
	"github.com/mckayn10/ai-chat-app/pkg/llm"
	"github.com/mckayn10/ai-chat-app/pkg/logging"
	"github.com/mckayn10/ai-chat-app/pkg/metrics"
	"github.com/mckayn10/ai-chat-app/pkg/observers"
	"github.com/mckayn10/ai-chat-app/pkg/redact"
	"github.com/mckayn10/ai-chat-app/pkg/runner"
	"github.com/mckayn10/ai-chat-app/pkg/server"
	"github.com/mckayn10/ai-chat-app/pkg/storage/postgres"
	"github.com/mckayn10/ai-chat-app/pkg/users"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := agent.LoadConfig(*configPath)
	if err != nil {
		slog.Error("config_load_failed", "error", err)
		os.Exit(1)
	}
	log := logging.SetDefault(cfg.LogLevel, cfg.LogFormat)
	redact.SetEnabled(cfg.Privacy.RedactPII)

	log.Info("startup",
		"environment", cfg.Environment,
		"llm_provider", cfg.Vendors.LLM.Provider,
		"database", cfg.Database.Driver,
	)

	client, err := agent.BuildClient(cfg)
	if err != nil {
		log.Error("llm_client_build_failed", "error", err)
		os.Exit(1)
	}

	contactStore, userStore, closeDB, err := buildStores(cfg, log)
	if err != nil {
		log.Error("store_build_failed", "error", err)
		os.Exit(1)
	}
	defer closeDB()

	obsList := []metrics.Observer{
		observers.NewLatencyObserver(logging.NewComponentLogger(log, "latency")),
		observers.NewLoggerObserver(logging.NewComponentLogger(log, "metrics")),
	}
	if path := strings.TrimSpace(cfg.Metrics.JSONLPath); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Error("metrics_file_open_failed", "error", err, "path", path)
			os.Exit(1)
		}
		defer f.Close()
		obsList = append(obsList, metrics.NewSamplingObserver(metrics.NewJSONLObserver(f), cfg.Metrics.SampleRate))
	}
	multiObs := observers.NewMultiObserver(obsList...)
	asyncObs := metrics.NewAsyncObserver(multiObs, 2048)
	defer asyncObs.Close()

	if cb, ok := client.(*llm.CircuitBreakerClient); ok {
		cb.SetObserver(asyncObs)
	}

	eng := agent.New(agent.Options{
		Client:            client,
		Store:             contactStore,
		Observer:          asyncObs,
		Logger:            logging.NewComponentLogger(log, "agent"),
		Threshold:         cfg.Engine.ConfidenceThreshold,
		Retry:             llm.RetryConfig{MaxAttempts: cfg.Engine.RetryMaxAttempts},
		CompletionTimeout: cfg.Engine.CompletionTimeout(),
	})
	authSvc := auth.NewService(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TTLHours)*time.Hour, userStore)

	srv := server.New(server.Options{
		Agent:  eng,
		Auth:   authSvc,
		Store:  contactStore,
		Logger: logging.NewComponentLogger(log, "server"),
	})

	lr := runner.NewLifecycleRunner(drainFunc(srv.Shutdown), runner.Hooks{
		OnStart: func() {
			go func() {
				if err := srv.Listen(cfg.Server.Addr); err != nil {
					log.Error("server_stopped", "error", err)
				}
			}()
		},
	}, 10*time.Second)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	if err := lr.Run(ctx); err != nil {
		log.Error("shutdown_error", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown_complete")
}

func buildStores(cfg agent.Config, log *slog.Logger) (contacts.Store, users.Store, func(), error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Database.Driver)) {
	case "postgres":
		db, err := postgres.NewConnection(cfg.Database.DSN, logging.NewComponentLogger(log, "postgres"))
		if err != nil {
			return nil, nil, nil, err
		}
		if err := postgres.Migrate(db); err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() { _ = postgres.Close(db) }
		return postgres.NewContactStore(db, log), postgres.NewUserStore(db, log), closeFn, nil
	default:
		return contacts.NewMemoryStore(), users.NewMemoryStore(), func() {}, nil
	}
}

type drainFunc func() error

func (f drainFunc) Drain() error { return f() }
