package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/arianatravel/backoffice/internal/core/ports"
	"github.com/arianatravel/backoffice/internal/core/service"
	"github.com/arianatravel/backoffice/internal/gate"
	"github.com/arianatravel/backoffice/internal/infrastructure/api"
	"github.com/arianatravel/backoffice/internal/infrastructure/store"
	"github.com/arianatravel/backoffice/internal/pkg/config"
	"github.com/arianatravel/backoffice/pkg/logger"
)

// app holds the wired client stack shared by all subcommands.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	store    ports.SessionStore
	client   *api.Client
	sessions *service.SessionService
	gate     *gate.Gate
}

func newApp(ctx context.Context) (*app, error) {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	st, err := newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, st, log)
	sessions := service.NewSessionService(st, client, log)

	return &app{
		cfg:      cfg,
		log:      log,
		store:    st,
		client:   client,
		sessions: sessions,
		gate:     gate.New(sessions, log),
	}, nil
}

func newStore(ctx context.Context, cfg *config.Config) (ports.SessionStore, error) {
	switch cfg.Store.Backend {
	case "memory":
		return store.NewMemory(), nil
	case "redis":
		client, err := store.ConnectRedis(ctx, store.RedisConfig{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, fmt.Errorf("connect session store: %w", err)
		}
		return store.NewRedis(client), nil
	case "file", "":
		path := cfg.Store.Path
		if path == "" {
			path = store.DefaultSessionPath()
		}
		return store.NewFile(path), nil
	default:
		return nil, fmt.Errorf("unknown session store backend %q", cfg.Store.Backend)
	}
}
