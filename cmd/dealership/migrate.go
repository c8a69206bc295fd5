package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/cse-motors/dealership/internal/infrastructure/db/mongo"
	"github.com/cse-motors/dealership/internal/infrastructure/db/postgres"
	"github.com/cse-motors/dealership/internal/pkg/config"
)

// NewMigrateCmd creates the migrate subcommand and its up/down/version children.
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply pending migrations (mongo: create indexes)",
			RunE:  runMigrateUp,
		},
		&cobra.Command{
			Use:   "down",
			Short: "Drop every schema object, data included",
			RunE: withMigrator(func(cmd *cobra.Command, m *postgres.Migrator) error {
				if err := m.Down(); err != nil {
					return err
				}
				cmd.Println("Schema dropped")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied migration version",
			RunE: withMigrator(func(cmd *cobra.Command, m *postgres.Migrator) error {
				v, dirty, err := m.Version()
				if err != nil {
					return err
				}
				cmd.Printf("version %d (dirty: %t)\n", v, dirty)
				return nil
			}),
		},
	)
	return cmd
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	if cfg.Store.Driver == config.DriverMongo {
		client, db, err := mongo.Connect(cmd.Context(), mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return oops.Code("DB_CONNECT_FAILED").Wrap(err)
		}
		defer client.Disconnect(cmd.Context())
		if err := mongo.EnsureIndexes(cmd.Context(), db); err != nil {
			return err
		}
		cmd.Println("Indexes ensured")
		return nil
	}

	return withMigrator(func(cmd *cobra.Command, m *postgres.Migrator) error {
		if err := m.Up(); err != nil {
			return err
		}
		cmd.Println("Migrations completed successfully")
		return nil
	})(cmd, args)
}

func withMigrator(run func(*cobra.Command, *postgres.Migrator) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(cmd.Context())
		if err != nil {
			return err
		}
		if cfg.Store.Driver != config.DriverPostgres {
			return oops.Code("CONFIG_INVALID").Errorf("migrate %s needs STORE_DRIVER=postgres", cmd.Name())
		}
		m, err := postgres.NewMigrator(cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer m.Close()
		return run(cmd, m)
	}
}
