package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ogurasousui/recruit-dashboard/internal/platform/config"
	"github.com/ogurasousui/recruit-dashboard/internal/platform/logging"
)

type options struct {
	configPath    string
	migrationsDir string
	cfg           *config.Config
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Error().Err(err).Msg("migration failed")
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply PostgreSQL schema migrations for the record store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			cfg, err := config.Load(config.Path(opts.configPath))
			if err != nil {
				return err
			}
			if _, err := logging.Init(cfg.Log); err != nil {
				return err
			}
			if err := cfg.Database.Validate(); err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to config file (defaults to CONFIG_PATH env or "+config.DefaultPath+")")
	flags.StringVar(&opts.migrationsDir, "dir", "assets/migrations", "directory containing migration files")

	root.AddCommand(
		actionCommand(opts, "up", "Apply all pending migrations", func(m *migrate.Migrate) error {
			return ignoreNoChange(m.Up())
		}),
		actionCommand(opts, "down", "Roll back all migrations", func(m *migrate.Migrate) error {
			return ignoreNoChange(m.Down())
		}),
		actionCommand(opts, "drop", "Drop everything in the database", func(m *migrate.Migrate) error {
			return m.Drop()
		}),
		actionCommand(opts, "version", "Print the applied migration version", func(m *migrate.Migrate) error {
			version, dirty, err := m.Version()
			if errors.Is(err, migrate.ErrNilVersion) {
				log.Info().Msg("no migration applied")
				return nil
			}
			if err != nil {
				return err
			}
			log.Info().Uint("version", version).Bool("dirty", dirty).Msg("migration version")
			return nil
		}),
	)

	return root
}

func actionCommand(opts *options, name, short string, run func(*migrate.Migrate) error) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			m, err := newMigrate(opts.migrationsDir, opts.cfg.Database.DSN())
			if err != nil {
				return err
			}
			defer m.Close()

			if err := run(m); err != nil {
				return fmt.Errorf("migration %s: %w", name, err)
			}
			log.Info().Str("action", name).Msg("migration completed")
			return nil
		},
	}
}

func newMigrate(dir, dsn string) (*migrate.Migrate, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve path for %s: %w", dir, err)
	}
	absDir = filepath.ToSlash(absDir)

	m, err := migrate.New(fmt.Sprintf("file://%s", absDir), dsn)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return m, nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
