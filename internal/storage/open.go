package storage

import (
	"context"
	"fmt"
)

// Drivers accepted by Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Options selects and locates the backing store.
type Options struct {
	Driver         string
	Path           string
	DSN            string
	MigrationsPath string
}

// Open returns the Store named by opts.Driver. Postgres schemas are migrated first.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case "", DriverSQLite:
		return OpenSQLite(opts.Path)
	case DriverPostgres:
		if err := RunMigrations(opts.DSN, opts.MigrationsPath); err != nil {
			return nil, err
		}
		return New(ctx, opts.DSN)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
