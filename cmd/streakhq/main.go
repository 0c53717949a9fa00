package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/streakhq/internal/auth"
	"github.com/alexanderramin/streakhq/internal/cli"
	"github.com/alexanderramin/streakhq/internal/config"
	"github.com/alexanderramin/streakhq/internal/db"
	"github.com/alexanderramin/streakhq/internal/intelligence"
	"github.com/alexanderramin/streakhq/internal/llm"
	"github.com/alexanderramin/streakhq/internal/persist"
	"github.com/alexanderramin/streakhq/internal/repository"
	"github.com/alexanderramin/streakhq/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Config file: env override or ~/.streakhq/config.yaml
	cfgPath := os.Getenv("STREAKHQ_CONFIG")
	if cfgPath == "" {
		cfgPath = config.GlobalConfigPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	uow := db.NewSQLiteUnitOfWork(database)

	adapterOpts := []persist.Option{persist.WithLogger(logger)}
	if cfg.Cloud.Debounce > 0 {
		adapterOpts = append(adapterOpts, persist.WithDebounce(cfg.Cloud.Debounce))
	}

	// Cloud sync is optional; without a driver there is no sign-in either.
	var provider *auth.Provider
	cloud, closeCloud, err := openCloud(cfg)
	if err != nil {
		return err
	}
	defer closeCloud()
	if cloud != nil {
		provider = auth.NewProvider(repository.NewSQLiteKVRepo(database), cfg.Auth.Secret, cfg.Auth.TTL)
		adapterOpts = append(adapterOpts, persist.WithCloud(cloud, provider))
	}
	adapter := persist.NewAdapter(database, uow, adapterOpts...)

	// AI suggestions stay off unless STREAKHQ_LLM_ENABLED is set.
	llmCfg := llm.LoadConfig()
	var llmClient llm.LLMClient
	if llmCfg.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(os.Stderr)
		}
		llmClient = llm.NewOllamaClient(llmCfg, observer)
	}

	store := service.NewStore(adapter,
		service.WithLogger(logger),
		service.WithObserver(service.NewSlogUseCaseObserver(logger)),
		service.WithSuggestions(intelligence.NewSuggestionService(llmClient, llmCfg.Enabled, logger)),
	)
	if provider != nil {
		stop := store.WatchSessions(provider)
		defer stop()
	}

	app := &cli.App{
		Store:  store,
		Auth:   provider,
		Config: cfg,
		Logger: logger,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	return cli.NewRootCmd(app).ExecuteContext(context.Background())
}

// openCloud connects the configured cloud store. It returns a nil repo when
// cloud sync is disabled.
func openCloud(cfg *config.Config) (repository.CloudRepo, func(), error) {
	noop := func() {}
	var conn *sql.DB
	var err error

	switch cfg.Cloud.Driver {
	case config.DriverNone:
		return nil, noop, nil
	case config.DriverSQLite:
		conn, err = db.OpenDB(cfg.CloudDSN())
		if err != nil {
			return nil, noop, fmt.Errorf("opening cloud store: %w", err)
		}
		return repository.NewSQLiteCloudRepo(conn), func() { conn.Close() }, nil
	case config.DriverPostgres:
		conn, err = db.OpenPostgres(context.Background(), cfg.CloudDSN())
		if err != nil {
			return nil, noop, err
		}
		return repository.NewPostgresCloudRepo(conn), func() { conn.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unknown cloud driver %q", cfg.Cloud.Driver)
	}
}
