// Package persistence elige el gateway según DB_DRIVER.
package persistence

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/labinventaris/internal/domain/repository"
	"github.com/jhoicas/labinventaris/internal/infrastructure/memory"
	"github.com/jhoicas/labinventaris/internal/infrastructure/postgres"
	"github.com/jhoicas/labinventaris/internal/infrastructure/sqlite"
	"github.com/jhoicas/labinventaris/pkg/config"
)

// Backend gateway abierto con sus operaciones de mantenimiento.
type Backend struct {
	Driver  string
	Gateway repository.Gateway

	migrate func(ctx context.Context) ([]string, error)
	close   func()
}

// Open conecta con el backend configurado. No aplica migraciones en postgres; sqlite
// aplica su esquema al abrir.
func Open(ctx context.Context, cfg config.DBConfig, log zerolog.Logger) (*Backend, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		tx := postgres.NewTxRunner(pool)
		log.Info().Str("driver", cfg.Driver).Msg("gateway listo")
		return &Backend{
			Driver:  cfg.Driver,
			Gateway: postgres.NewGateway(pool),
			migrate: func(ctx context.Context) ([]string, error) { return postgres.Migrate(ctx, pool, tx) },
			close:   pool.Close,
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("abrir sqlite %s: %w", cfg.SQLitePath, err)
		}
		log.Info().Str("driver", cfg.Driver).Str("path", cfg.SQLitePath).Msg("gateway listo")
		return &Backend{
			Driver:  cfg.Driver,
			Gateway: db.Gateway(),
			migrate: func(ctx context.Context) ([]string, error) {
				if err := db.MigrateSchema(ctx); err != nil {
					return nil, err
				}
				return []string{"schema.sql"}, nil
			},
			close: func() {
				if err := db.Close(); err != nil {
					log.Warn().Err(err).Msg("cerrar sqlite")
				}
			},
		}, nil

	case config.DriverMemory:
		log.Warn().Msg("gateway en memoria: los datos se pierden al reiniciar")
		return &Backend{
			Driver:  cfg.Driver,
			Gateway: memory.NewGateway(),
			migrate: func(context.Context) ([]string, error) { return nil, nil },
			close:   func() {},
		}, nil

	default:
		return nil, fmt.Errorf("DB_DRIVER desconocido %q", cfg.Driver)
	}
}

// Migrate aplica el esquema pendiente y devuelve lo aplicado.
func (b *Backend) Migrate(ctx context.Context) ([]string, error) { return b.migrate(ctx) }

// Close libera conexiones.
func (b *Backend) Close() { b.close() }
