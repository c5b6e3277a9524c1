package helper

//nolint:revive
import (
	"errors"
	"fixmycondo/config"
	"fixmycondo/infras/postgres"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp      = "up"
	ActionDown    = "down"
	ActionStepUp  = "step-up"
	ActionDrop    = "drop"
	ActionVersion = "version"
)

var ErrUnknownAction = errors.New("unknown migration action")

var steps = map[string]func(*migrate.Migrate) error{
	ActionUp:     (*migrate.Migrate).Up,
	ActionDown:   func(m *migrate.Migrate) error { return m.Steps(-1) },
	ActionStepUp: func(m *migrate.Migrate) error { return m.Steps(1) },
	ActionDrop:   (*migrate.Migrate).Down,
	ActionVersion: func(m *migrate.Migrate) error {
		version, dirty, err := m.Version()
		if err != nil {
			return err //nolint:wrapcheck
		}

		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Current schema version")

		return nil
	},
}

// Actions lists the supported migration actions in a stable order.
func Actions() []string {
	actions := make([]string, 0, len(steps))
	for action := range steps {
		actions = append(actions, action)
	}

	slices.Sort(actions)

	return actions
}

// MigrationURL is the write node DSN with the migrations table golang-migrate should use.
func MigrationURL(cfg *config.Config) string {
	pg := cfg.DB.Postgres

	return postgres.DSN(pg.Write, pg.Prefix, url.Values{"x-migrations-table": {pg.MigrationTable}})
}

// Run applies action to the write database. A run with nothing to change is not an error.
func Run(cfg *config.Config, action string) error {
	step, ok := steps[action]
	if !ok {
		return fmt.Errorf("%w %q, use one of %s", ErrUnknownAction, action, strings.Join(Actions(), ", "))
	}

	mig, err := migrate.New(cfg.DB.Postgres.MigrationPath, MigrationURL(cfg))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer func() {
		srcErr, dbErr := mig.Close()
		if err := errors.Join(srcErr, dbErr); err != nil {
			log.Warn().Err(err).Msg("Failed to close migrate instance")
		}
	}()

	if err := step(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running migration %s: %w", action, err)
	}

	log.Info().Str("action", action).Msg("Database migration finished")

	return nil
}
