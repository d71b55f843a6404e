// Package migration aplica el esquema embebido con golang-migrate.
package migration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/jhoicas/crm-api/internal/infrastructure/postgres"
	"github.com/jhoicas/crm-api/pkg/logger"
)

// Migrator envuelve migrate.Migrate con logging.
type Migrator struct {
	m   *migrate.Migrate
	log *logger.Logger
}

// New crea el migrador sobre los scripts embebidos en postgres.Migrations.
func New(dsn string, log *logger.Logger) (*Migrator, error) {
	src, err := iofs.New(postgres.Migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("migration: fuente iofs: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, DatabaseURL(dsn))
	if err != nil {
		return nil, fmt.Errorf("migration: crear instancia: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Migrator{m: m, log: log.Named("migration")}, nil
}

// DatabaseURL adapta el DSN de PostgreSQL al esquema del driver pgx5 de golang-migrate.
func DatabaseURL(dsn string) string {
	for _, prefix := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(dsn, prefix) {
			return "pgx5://" + strings.TrimPrefix(dsn, prefix)
		}
	}
	return dsn
}

// Up aplica todas las migraciones pendientes.
func (mg *Migrator) Up() error {
	mg.log.Info().Msg("aplicando migraciones")
	if err := mg.m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			mg.log.Info().Msg("sin migraciones pendientes")
			return nil
		}
		return fmt.Errorf("migration: up: %w", err)
	}
	return mg.logVersion()
}

// Down revierte todas las migraciones.
func (mg *Migrator) Down() error {
	mg.log.Warn().Msg("revirtiendo todas las migraciones")
	if err := mg.m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration: down: %w", err)
	}
	return nil
}

// Steps aplica n pasos (positivo sube, negativo baja).
func (mg *Migrator) Steps(n int) error {
	mg.log.Info().Int("steps", n).Msg("aplicando pasos de migración")
	if err := mg.m.Steps(n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration: steps: %w", err)
	}
	return mg.logVersion()
}

// Force fija la versión sin ejecutar scripts (recuperar un estado dirty).
func (mg *Migrator) Force(version int) error {
	mg.log.Warn().Int("version", version).Msg("forzando versión")
	if err := mg.m.Force(version); err != nil {
		return fmt.Errorf("migration: force: %w", err)
	}
	return nil
}

// Version versión actual y si quedó dirty.
func (mg *Migrator) Version() (uint, bool, error) {
	v, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("migration: version: %w", err)
	}
	return v, dirty, nil
}

// Close libera la fuente y la conexión.
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}

func (mg *Migrator) logVersion() error {
	v, dirty, err := mg.Version()
	if err != nil {
		return err
	}
	mg.log.Info().Uint("version", v).Bool("dirty", dirty).Msg("migraciones aplicadas")
	return nil
}
