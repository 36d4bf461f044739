package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/gym-service/internal/auth"
	"github.com/spec-kit/gym-service/internal/config"
	"github.com/spec-kit/gym-service/internal/domain"
	"github.com/spec-kit/gym-service/internal/observability"
	"github.com/spec-kit/gym-service/internal/persistence"
	"github.com/spec-kit/gym-service/internal/repository"
	"github.com/spec-kit/gym-service/internal/service"
)

var (
	// Global flags
	dsn     string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gymctl",
		Short: "Administration tool for the gym service",
		Long: `A CLI tool for operating the gym service database.

This tool allows you to:
  - Apply the SQL migrations
  - Unlock staff accounts locked by failed logins
  - Produce bcrypt hashes for seeding accounts
  - Inspect the permissions granted to each role`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "PostgreSQL DSN (defaults to POSTGRES_DSN)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Timeout for database operations")

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(unlockCmd())
	rootCmd.AddCommand(hashPasswordCmd())
	rootCmd.AddCommand(permissionsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// migrateCmd applies the SQL files of the migrations directory.
func migrateCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply SQL migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.Postgres.MigrationsDir
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			pg, err := connect(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer pg.Close()

			return persistence.RunMigrations(ctx, pg.PoolHandle(), dir, logger)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Migrations directory (defaults to POSTGRES_MIGRATIONS_DIR)")
	return cmd
}

// unlockCmd clears the lock flag and attempt counter of an account.
func unlockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlock <userName>",
		Short: "Unlock a staff account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			pg, err := connect(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer pg.Close()

			authService := service.NewAuthService(service.AuthDependencies{
				CredentialStore: repository.NewPostgresStaffRepository(pg.PoolHandle()),
				Logger:          logger,
			})
			account, err := authService.UnlockByUserName(ctx, nil, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unlocked %s (id %d)\n", account.UserName, account.ID)
			return nil
		},
	}
}

// hashPasswordCmd prints a bcrypt hash at the configured cost.
func hashPasswordCmd() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "hash-password <plain>",
		Short: "Print the bcrypt hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cost == 0 {
				cfg, _, err := setup()
				if err != nil {
					return err
				}
				cost = cfg.Auth.BcryptCost
			}
			hasher, err := auth.NewBcryptHasher(cost)
			if err != nil {
				return err
			}
			hash, err := hasher.Hash(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}

	cmd.Flags().IntVar(&cost, "cost", 0, "bcrypt cost (defaults to AUTH_BCRYPT_COST)")
	return cmd
}

// permissionsCmd lists the permissions of one role, or of every role.
func permissionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "permissions [role]",
		Short:   "List role permissions",
		Aliases: []string{"perm"},
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roles := domain.Roles()
			if len(args) == 1 {
				role, err := domain.ParseRole(args[0])
				if err != nil {
					return err
				}
				roles = []domain.Role{role}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ROLE\tPERMISSIONS")
			for _, role := range roles {
				granted := auth.PermissionsFor(role)
				names := make([]string, 0, len(granted))
				for _, p := range granted {
					names = append(names, string(p))
				}
				fmt.Fprintf(w, "%s\t%s\n", role, strings.Join(names, ", "))
			}
			return w.Flush()
		},
	}
}

func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if dsn != "" {
		cfg.Postgres.DSN = dsn
	}
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, nil
}

func connect(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*persistence.Postgres, error) {
	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("a PostgreSQL DSN is required: pass --dsn or set POSTGRES_DSN")
	}
	return persistence.NewPostgres(ctx, cfg.Postgres, logger)
}
