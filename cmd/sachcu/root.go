package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sachcu/marketplace-client/internal/client"
	"github.com/sachcu/marketplace-client/internal/core/domain"
	"github.com/sachcu/marketplace-client/internal/core/ports"
	"github.com/sachcu/marketplace-client/internal/core/service"
	mongodb "github.com/sachcu/marketplace-client/internal/infrastructure/db/mongo"
	redisdb "github.com/sachcu/marketplace-client/internal/infrastructure/db/redis"
	"github.com/sachcu/marketplace-client/internal/infrastructure/kv"
	"github.com/sachcu/marketplace-client/internal/pkg/config"
	"github.com/sachcu/marketplace-client/pkg/logger"
)

var (
	flagAPIURL   string
	flagLogLevel string
	flagOutput   string
	flagBackend  string
)

var rootCmd = &cobra.Command{
	Use:           "sachcu",
	Short:         "sachcu talks to the second-hand book marketplace API.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		switch flagOutput {
		case "json", "text":
			return nil
		}
		return fmt.Errorf("--output must be json or text, got %q", flagOutput)
	},
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagAPIURL, "api-url", "", "API base URL (overrides SACHCU_API_URL)")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides SACHCU_LOG_LEVEL)")
	pf.StringVarP(&flagOutput, "output", "o", "text", "output format: json or text")
	pf.StringVar(&flagBackend, "session-backend", "", "credential store: file, redis, mongo or memory (overrides SACHCU_SESSION_BACKEND)")

	rootCmd.AddCommand(
		registerCmd, loginCmd, adminLoginCmd, logoutCmd, whoamiCmd,
		booksCmd, categoriesCmd, postsCmd, usersCmd, imagesCmd, adminCmd,
		devapiCmd,
	)
}

// app is the per-invocation wiring: configuration, logger, credential store
// and API client.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	session *service.SessionService
	client  *client.Client
	closers []func() error
}

func loadConfig(ctx context.Context) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	if flagAPIURL != "" {
		cfg.APIURL = flagAPIURL
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagBackend != "" {
		cfg.Session.Backend = strings.ToLower(flagBackend)
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	return cfg, log, nil
}

func newApp(ctx context.Context) (*app, error) {
	cfg, log, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, log: log}

	store, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	a.session = service.NewSessionService(store, log.With().Str("component", "session").Logger())

	c, err := client.New(client.Options{
		BaseURL:           cfg.APIURL,
		Session:           a.session,
		Timeout:           cfg.Timeout,
		Logger:            log.With().Str("component", "client").Logger(),
		ModerationWorkers: cfg.ModerationWorkers,
	})
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.client = c
	return a, nil
}

func (a *app) openStore(ctx context.Context) (ports.KeyValueStore, error) {
	switch a.cfg.Session.Backend {
	case config.BackendMemory:
		return kv.NewMemoryStore(), nil
	case config.BackendRedis:
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, rdb.Close)
		return redisdb.NewStore(rdb, a.cfg.Session.Namespace, a.cfg.Session.TTL), nil
	case config.BackendMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      a.cfg.Mongo.URI,
			Database: a.cfg.Mongo.Database,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() error { return client.Disconnect(context.Background()) })
		store := mongodb.NewStore(db, a.cfg.Session.Namespace, a.cfg.Session.TTL)
		if a.cfg.Session.TTL > 0 {
			if err := store.EnsureIndexes(ctx); err != nil {
				return nil, err
			}
		}
		return store, nil
	case config.BackendFile:
		path := a.cfg.Session.File
		if path == "" {
			p, err := kv.DefaultFilePath()
			if err != nil {
				return nil, err
			}
			path = p
		}
		return kv.NewFileStore(path), nil
	}
	return nil, fmt.Errorf("unknown session backend %q", a.cfg.Session.Backend)
}

func (a *app) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// withClient runs fn against a fully wired app and maps API failures to exit
// codes. role names the credential slot fn uses, for the login hint.
func withClient(cmd *cobra.Command, role domain.Role, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return classify(fn(ctx, a), role)
}
