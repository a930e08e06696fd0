package main

import (
	"context"
	"fmt"

	"messagely/config"
	"messagely/pkg/database"
	"messagely/pkg/logger"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

// connectFunc is replaced in tests.
var connectFunc = database.Connect

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "migrate",
		Short: "migrate - Messagely database tool",
		Long: `migrate applies and inspects the embedded schema migrations of the Messagely
database and can load development fixtures. Connection settings come from the
same DB_* environment variables (or .env file) as the API server.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		dbCommand("up", "Apply all pending migrations", func(ctx context.Context, db *sqlx.DB, cmd *cobra.Command) error {
			if err := database.Migrate(ctx, db.DB); err != nil {
				return err
			}
			cmd.Println("migrations applied")
			return nil
		}),
		dbCommand("down", "Roll back the most recent migration", func(ctx context.Context, db *sqlx.DB, cmd *cobra.Command) error {
			return database.Rollback(ctx, db.DB)
		}),
		dbCommand("reset", "Roll back every migration (drops all data)", func(ctx context.Context, db *sqlx.DB, cmd *cobra.Command) error {
			return database.Reset(ctx, db.DB)
		}),
		dbCommand("status", "Show the state of each migration", func(ctx context.Context, db *sqlx.DB, cmd *cobra.Command) error {
			return database.Status(ctx, db.DB)
		}),
		dbCommand("version", "Print the current schema version", func(ctx context.Context, db *sqlx.DB, cmd *cobra.Command) error {
			v, err := database.Version(ctx, db.DB)
			if err != nil {
				return err
			}
			cmd.Printf("schema version: %d\n", v)
			return nil
		}),
		dbCommand("seed", "Insert development users and messages", func(ctx context.Context, db *sqlx.DB, cmd *cobra.Command) error {
			res, err := database.Seed(ctx, db, nil)
			if err != nil {
				return err
			}
			cmd.Printf("seeded %d users and %d messages\n", res.Users, res.Messages)
			return nil
		}),
		dbCommand("truncate", "Delete all rows from every table", func(ctx context.Context, db *sqlx.DB, cmd *cobra.Command) error {
			return database.Truncate(ctx, db)
		}),
	)

	return root
}

type dbRunFunc func(ctx context.Context, db *sqlx.DB, cmd *cobra.Command) error

// dbCommand wires a subcommand that needs an open database connection.
func dbCommand(use, short string, run dbRunFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			l := logger.New(cfg.LogMode)
			defer l.Sync()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			db, err := connectFunc(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()

			l.Infof("running %s against %s/%s", use, cfg.DBHost, cfg.DBName)
			return run(ctx, db, cmd)
		},
	}
}
