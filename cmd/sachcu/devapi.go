package main

import (
	"github.com/spf13/cobra"

	"github.com/sachcu/marketplace-client/internal/devapi"
	"github.com/sachcu/marketplace-client/internal/devapi/store"
)

var (
	devapiAddr     string
	devapiBasePath string
	devapiNoSeed   bool
)

var devapiCmd = &cobra.Command{
	Use:   "devapi",
	Short: "Serve an in-memory marketplace API for local development",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		cfg, log, err := loadConfig(ctx)
		if err != nil {
			return err
		}
		addr := cfg.DevAPI.Addr
		if cmd.Flags().Changed("addr") {
			addr = devapiAddr
		}
		base := cfg.DevAPI.BasePath
		if cmd.Flags().Changed("base-path") {
			base = devapiBasePath
		}

		st := store.New(store.Options{})
		if cfg.DevAPI.Seed && !devapiNoSeed {
			if err := st.Seed(ctx); err != nil {
				return err
			}
			log.Info().
				Str("admin", store.SeedAdminEmail).
				Str("user", store.SeedUserEmail).
				Msg("devapi seeded")
		}

		devLog := log.With().Str("component", "devapi").Logger()
		e := devapi.NewRouter(st, devapi.Options{
			JWTSecret: cfg.DevAPI.JWTSecret,
			TokenTTL:  cfg.DevAPI.TokenTTL,
			BasePath:  base,
			Logger:    devLog,
		})
		return devapi.Serve(ctx, e, addr, devLog)
	},
}

func init() {
	f := devapiCmd.Flags()
	f.StringVar(&devapiAddr, "addr", "", "listen address (overrides SACHCU_DEVAPI_ADDR)")
	f.StringVar(&devapiBasePath, "base-path", "", "route prefix (overrides SACHCU_DEVAPI_BASE_PATH)")
	f.BoolVar(&devapiNoSeed, "no-seed", false, "start with an empty store")
}
