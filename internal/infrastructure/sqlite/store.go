// Package sqlite implementa el gateway de persistencia sobre un único archivo SQLite
// (driver modernc.org/sqlite, Go puro). Pensado para una instalación de un solo laboratorio.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/jhoicas/labinventaris/internal/domain"
	"github.com/jhoicas/labinventaris/internal/domain/repository"
	"github.com/jhoicas/labinventaris/internal/infrastructure/sqlpatch"
)

//go:embed schema.sql
var schema string

const (
	dateLayout    = "2006-01-02"
	instantLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// DB conexión SQLite con el esquema aplicado.
type DB struct {
	db *sql.DB
}

// Open abre (o crea) el archivo y aplica el esquema. path ":memory:" sirve para tests.
func Open(ctx context.Context, path string) (*DB, error) {
	if path == "" {
		path = "labinventaris.db"
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite serializa escrituras; una conexión evita SQLITE_BUSY y mantiene viva la base :memory:.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{db: db}, nil
}

// Migrate aplica el esquema embebido (idempotente).
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Close cierra la conexión.
func (d *DB) Close() error { return d.db.Close() }

// Gateway expone los seis repositorios.
func (d *DB) Gateway() repository.Gateway {
	return repository.Gateway{
		Items:         &ItemRepo{db: d.db},
		Loans:         &LoanRepo{db: d.db},
		Logs:          &ActivityLogRepo{db: d.db},
		Labs:          &LabRepo{db: d.db},
		Notifications: &NotificationRepo{db: d.db},
		Profiles:      &ProfileRepo{db: d.db},
	}
}

// execer lo cumplen *sql.DB y *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

var dialect = sqlpatch.Dialect{
	Placeholder: func(int) string { return "?" },
	Bind: func(v any) any {
		if t, ok := v.(time.Time); ok {
			return formatDate(t)
		}
		return v
	},
}

func formatDate(t time.Time) string { return t.Format(dateLayout) }

func formatDatePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatDate(*t)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func parseDatePtr(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := parseDate(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatInstant(t time.Time) string { return t.UTC().Format(instantLayout) }

func parseInstant(s string) (time.Time, error) { return time.Parse(instantLayout, s) }

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func wrapWrite(op string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func expectRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}
	return nil
}

func update(ctx context.Context, db execer, table, kind, id string, set []sqlpatch.Assignment) error {
	query, args, ok := sqlpatch.Update(dialect, table, set, id)
	if !ok {
		return nil
	}
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapWrite("update "+kind, err)
	}
	return expectRow(res, kind, id)
}

// MigrateSchema vuelve a aplicar el esquema sobre la conexión abierta.
func (d *DB) MigrateSchema(ctx context.Context) error { return Migrate(ctx, d.db) }
