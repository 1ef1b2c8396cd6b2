package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"

	"github.com/ymjo140/rendezvous-merchant-sub000/config"
	"github.com/ymjo140/rendezvous-merchant-sub000/infras/postgres"
	"github.com/ymjo140/rendezvous-merchant-sub000/migrations"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

const migrationsTableParam = "x-migrations-table"

type step struct {
	run  func(*migrate.Migrate) error
	done string
}

var steps = map[string]step{
	"up":      {run: (*migrate.Migrate).Up, done: "Database migrations completed successfully"},
	"down":    {run: func(m *migrate.Migrate) error { return m.Steps(-1) }, done: "Latest database migration rolled back successfully"},
	"step-up": {run: func(m *migrate.Migrate) error { return m.Steps(1) }, done: "Next database migration applied successfully"},
	"drop":    {run: (*migrate.Migrate).Down, done: "Database migrations rolled back successfully"},
}

// databaseURL is the write DSN plus the migrate driver's table option.
func databaseURL(cfg *config.Config) (string, error) {
	dsn, err := url.Parse(postgres.DSN(cfg))
	if err != nil {
		return "", fmt.Errorf("invalid postgres dsn: %w", err)
	}

	if table := cfg.DB.Postgres.MigrationTable; table != "" {
		query := dsn.Query()
		query.Set(migrationsTableParam, table)
		dsn.RawQuery = query.Encode()
	}

	return dsn.String(), nil
}

func open(cfg *config.Config) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.Postgres, migrations.PostgresDir)
	if err != nil {
		return nil, fmt.Errorf("error loading embedded migrations: %w", err)
	}

	databaseURL, err := databaseURL(cfg)
	if err != nil {
		return nil, err
	}

	mig, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func Runner(cfg *config.Config, action string) error {
	current, ok := steps[action]
	if !ok {
		return fmt.Errorf("unknown migration action %q", action)
	}

	mig, err := open(cfg)
	if err != nil {
		return err
	}

	defer mig.Close()

	if err = current.run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	log.Info().Msg(current.done)

	return nil
}

// Version reports the applied schema version and whether a failed run left it dirty.
func Version(cfg *config.Config) (uint, bool, error) {
	mig, err := open(cfg)
	if err != nil {
		return 0, false, err
	}

	defer mig.Close()

	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, fmt.Errorf("error reading migration version: %w", err)
	}

	return version, dirty, nil
}

func Up(cfg *config.Config) error {
	return Runner(cfg, "up")
}

func StepUp(cfg *config.Config) error {
	return Runner(cfg, "step-up")
}

func Down(cfg *config.Config) error {
	return Runner(cfg, "down")
}

func Drop(cfg *config.Config) error {
	return Runner(cfg, "drop")
}
