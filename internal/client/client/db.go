package client

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/clinicsite/internal/client/migrations"
	"github.com/dmitrijs2005/clinicsite/internal/dbx"
	"github.com/dmitrijs2005/clinicsite/internal/filex"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func driverName(d dbx.Dialect) (driver, gooseDialect string, err error) {
	switch d {
	case dbx.DialectSQLite:
		return "sqlite", "sqlite3", nil
	case dbx.DialectPostgres:
		return "pgx", "pgx", nil
	default:
		return "", "", fmt.Errorf("unsupported store driver %q", d)
	}
}

// RunMigrations applies the embedded migrations of dialect d to db.
func RunMigrations(ctx context.Context, db *sql.DB, d dbx.Dialect) error {
	_, gooseDialect, err := driverName(d)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return gooseUpContext(ctx, db, string(d))
}

// InitDatabase opens the durable store database and migrates it.
func InitDatabase(ctx context.Context, d dbx.Dialect, dsn string) (*sql.DB, error) {
	driver, _, err := driverName(d)
	if err != nil {
		return nil, err
	}

	if d == dbx.DialectSQLite {
		if err := filex.EnsureParentDir(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if d == dbx.DialectSQLite {
		// one writer; also keeps ":memory:" a single database
		db.SetMaxOpenConns(1)
	}

	if err := RunMigrations(ctx, db, d); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
