package migration

import (
	"errors"
	"fmt"

	"healthwatch/internal/app/server/config"

	"github.com/golang-migrate/migrate/v4"
	// драйвер postgres и файловый источник регистрируются через init
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"golang.org/x/exp/slog"
)

// Migrator: часть *migrate.Migrate, которой пользуется пакет.
type Migrator interface {
	Up() error
	Down() error
	Version() (uint, bool, error)
	Close() (error, error)
}

// MigrationEngine открывает Migrator; в тестах подменяется, чтобы не трогать ФС и БД.
type MigrationEngine func(sourceURL, databaseURL string) (Migrator, error)

func DefaultEngine(sourceURL, databaseURL string) (Migrator, error) {
	return migrate.New(sourceURL, databaseURL)
}

// State: текущая версия схемы. Version == 0 и Applied == false, если миграций ещё не было.
type State struct {
	Version uint
	Applied bool
	Dirty   bool
}

type Migration struct {
	source   string
	database string
	engine   MigrationEngine
	log      *slog.Logger
}

func NewMigration(conf *config.Config, engine MigrationEngine, log *slog.Logger) *Migration {
	if engine == nil {
		engine = DefaultEngine
	}
	return &Migration{
		source:   "file://" + conf.DB.Migrations,
		database: conf.DB.DatabaseURI,
		engine:   engine,
		log:      log.With("component", "migration"),
	}
}

// Up применяет все новые миграции; схема без изменений ошибкой не считается.
func (mg *Migration) Up() error {
	return mg.with(func(m Migrator) error { return mg.step(m, "up", m.Up) })
}

// Down откатывает схему целиком.
func (mg *Migration) Down() error {
	return mg.with(func(m Migrator) error { return mg.step(m, "down", m.Down) })
}

func (mg *Migration) Status() (State, error) {
	var st State
	err := mg.with(func(m Migrator) error {
		var err error
		st, err = state(m)
		return err
	})
	return st, err
}

func (mg *Migration) with(fn func(Migrator) error) (err error) {
	m, err := mg.engine(mg.source, mg.database)
	if err != nil {
		return fmt.Errorf("open migrator: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		err = errors.Join(err, srcErr, dbErr)
	}()

	return fn(m)
}

func (mg *Migration) step(m Migrator, direction string, apply func() error) error {
	if err := apply(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			mg.log.Debug("schema unchanged", "direction", direction)
			return nil
		}
		return fmt.Errorf("migrate %s: %w", direction, err)
	}

	st, err := state(m)
	if err != nil {
		mg.log.Warn("migrations applied, version unknown", "direction", direction, "error", err)
		return nil
	}
	mg.log.Info("migrations applied", "direction", direction, "version", st.Version, "dirty", st.Dirty)
	return nil
}

func state(m Migrator) (State, error) {
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("schema version: %w", err)
	}
	return State{Version: v, Applied: true, Dirty: dirty}, nil
}
