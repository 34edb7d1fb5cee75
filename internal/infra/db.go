// README: Postgres pool initialisation, readiness wait and embedded schema migrations.
package infra

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const dbPingRetries = 5

func NewDB(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	return pgxpool.New(ctx, dsn)
}

// WaitForDB pings the pool with a linear backoff until it answers.
func WaitForDB(ctx context.Context, pool *pgxpool.Pool, log *zap.Logger) error {
	var err error
	for attempt := 1; attempt <= dbPingRetries; attempt++ {
		if err = pool.Ping(ctx); err == nil {
			return nil
		}
		wait := time.Duration(attempt) * 200 * time.Millisecond
		log.Warn("database ping failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("database unreachable after %d attempts: %w", dbPingRetries, err)
}

// RunMigrations applies every pending up migration.
func RunMigrations(dsn string, log *zap.Logger) error {
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return errors.New("migrations need a postgres:// or postgresql:// dsn")
	}

	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			log.Warn("closing migrate", zap.NamedError("source", srcErr), zap.NamedError("db", dbErr))
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	version, dirty, err := m.Version()
	if err != nil {
		log.Warn("could not read migration version", zap.Error(err))
		return nil
	}
	if dirty {
		return fmt.Errorf("migration state is dirty at version %d", version)
	}
	log.Info("database schema ready", zap.Uint("version", version))
	return nil
}
