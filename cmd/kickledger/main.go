package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alejandrodnm/kickledger/config"
	"github.com/alejandrodnm/kickledger/internal/adapters/kickbase"
	"github.com/alejandrodnm/kickledger/internal/adapters/notify"
	"github.com/alejandrodnm/kickledger/internal/adapters/storage"
	"github.com/alejandrodnm/kickledger/internal/application/pipeline"
	"github.com/alejandrodnm/kickledger/internal/application/report"
	"github.com/alejandrodnm/kickledger/internal/domain"
	"github.com/alejandrodnm/kickledger/internal/ports"
)

var (
	errNotFound = errors.New("league not found in session")
	errNoLeague = errors.New("league.id or league.name must be configured")
	errNoStart  = errors.New("league start date unknown; set league.start_date")
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	refresh := flag.Bool("refresh", false, "recompute enrichment, matching and summaries instead of reusing caches")
	overview := flag.Bool("overview", false, "also print league overview (dashboard stats + squads)")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	creds, err := config.LoadCredentials()
	if err != nil {
		slog.Error("missing credentials", "err", err)
		os.Exit(1)
	}

	slog.Info("kickledger starting",
		"config", *configPath,
		"refresh", *refresh,
		"backend", cfg.Storage.Backend,
		"pacing", cfg.RequestInterval(),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := kickbase.NewClient(cfg.API.BaseURL, cfg.RequestInterval(), cfg.Pacing.Burst, cfg.API.FeedPageSize)

	session, err := client.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		slog.Error("login failed", "err", err)
		os.Exit(1)
	}

	league, err := resolveLeague(cfg, session)
	if err != nil {
		slog.Error("failed to resolve league", "err", err)
		os.Exit(1)
	}
	slog.Info("league resolved", "id", league.ID, "name", league.Name, "start", league.Start)

	repo, err := openRepository(cfg.Storage)
	if err != nil {
		slog.Error("failed to open storage", "err", err)
		os.Exit(1)
	}
	defer repo.Close()

	p := pipeline.New(
		pipeline.Config{League: league, PageSize: cfg.API.FeedPageSize},
		client, client, client, repo,
	)

	result, err := p.Run(ctx, *refresh)
	if err != nil {
		slog.Error("reconciliation failed", "err", err)
		os.Exit(1)
	}

	console := notify.NewConsole()
	if err := console.Notify(ctx, result); err != nil {
		slog.Warn("notifier error", "err", err)
	}

	if *overview {
		managers, err := client.Managers(ctx, league.ID)
		if err != nil {
			slog.Error("failed to fetch managers", "err", err)
			os.Exit(1)
		}
		rows, err := report.NewBuilder(client, league.ID).Build(ctx, managers, result.Summaries)
		if err != nil {
			slog.Error("failed to build overview", "err", err)
			os.Exit(1)
		}
		console.PrintOverview(rows)
	}

	slog.Info("kickledger done", "run_id", result.RunID)
}

// resolveLeague determina la liga a analizar: el ID de config si está, o
// la búsqueda por nombre entre las ligas de la sesión. start_date de
// config pisa la fecha de creación de la liga.
func resolveLeague(cfg *config.Config, session kickbase.Session) (domain.League, error) {
	var league domain.League

	switch {
	case cfg.League.ID != "":
		league = domain.League{ID: cfg.League.ID, Name: cfg.League.Name}
		// La fecha puede venir de la sesión si la liga es del usuario
		for _, l := range session.Leagues {
			if l.ID == cfg.League.ID {
				league = l
				break
			}
		}
	case cfg.League.Name != "":
		found, ok := session.FindLeague(cfg.League.Name)
		if !ok {
			return domain.League{}, &domain.FetchError{Resource: "league", ID: cfg.League.Name, Err: errNotFound}
		}
		league = found
	default:
		return domain.League{}, errNoLeague
	}

	if cfg.League.StartDate != "" {
		start, err := time.Parse(time.RFC3339, cfg.League.StartDate)
		if err != nil {
			return domain.League{}, err
		}
		league.Start = start.UTC()
	}
	if league.Start.IsZero() {
		return domain.League{}, errNoStart
	}
	return league, nil
}

// openRepository instancia el backend de persistencia configurado.
func openRepository(cfg config.StorageConfig) (ports.Repository, error) {
	switch cfg.Backend {
	case "sqlite":
		return storage.NewSQLiteRepository(cfg.DSN)
	default:
		return storage.NewJSONRepository(cfg.Dir)
	}
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
