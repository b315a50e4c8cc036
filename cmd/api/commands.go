package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"storefront/internal/clock"
	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/infra/db"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/logger"
	"storefront/internal/repository"
	"storefront/internal/server"
	auth "storefront/internal/usecase/auth_usecase"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront backend API",
		SilenceUsage:  true,
		SilenceErrors: true,
		//サブコマンド無しはserve
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(serveCmd(), migrateCmd(), hashPasswordCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the SQL schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.StoreDriver == config.StoreDriverMemory {
				return fmt.Errorf("migrate needs STORE_DRIVER=postgres or sqlite")
			}

			gdb, err := db.Connect(cfg)
			if err != nil {
				return fmt.Errorf("connect db: %w", err)
			}
			if err := db.Migrate(gdb); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrated")
			return nil
		},
	}
}

func hashPasswordCmd() *cobra.Command {
	var cost int
	cmd := &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hashed, err := auth.NewBcryptPasswordHasher(cost).Hash(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hashed)
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", 12, "bcrypt cost")
	return cmd
}

func runServe(parent context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cfg.GoEnv)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.JWTSecretGenerated {
		log.Warn("JWT_SECRET is not set; using a random secret (tokens are invalidated on restart)")
	}

	repos, ping, err := buildRepositories(cfg, log)
	if err != nil {
		return err
	}

	e, err := server.New(cfg, log, server.Deps{
		Repos:    repos,
		Registry: prometheus.NewRegistry(),
		Clock:    clock.New(),
		Ping:     ping,
	})
	if err != nil {
		return err
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.Start(ctx, e, ":"+cfg.Port, log)
}

// STORE_DRIVERでmemory / gorm(postgres, sqlite)を切り替える
func buildRepositories(cfg config.Config, log *zap.Logger) (repository.Repositories, handler.Pinger, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		return infraRepo.NewMemoryRepositories(), nil, nil
	}

	gdb, err := db.Connect(cfg)
	if err != nil {
		return repository.Repositories{}, nil, fmt.Errorf("connect db: %w", err)
	}
	if err := db.Migrate(gdb); err != nil {
		return repository.Repositories{}, nil, fmt.Errorf("migrate: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return repository.Repositories{}, nil, err
	}
	log.Info("database ready", zap.String("driver", cfg.StoreDriver))

	return infraRepo.NewGormRepositories(gdb), sqlDB.PingContext, nil
}
