// Package migrations applies the embedded products schema and seed rows.
package migrations

import (
	"embed"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var files embed.FS

const pgxScheme = "pgx5://"

type zapLogger struct {
	log *zap.Logger
}

func (l zapLogger) Printf(format string, v ...any) {
	l.log.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l zapLogger) Verbose() bool { return false }

// Up applies all pending migrations. It reports whether anything changed.
func Up(databaseURL string, log *zap.Logger) (bool, error) {
	src, err := iofs.New(files, "sql")
	if err != nil {
		return false, errors.Wrap(err, "open embedded migrations")
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, DriverURL(databaseURL))
	if err != nil {
		return false, errors.Wrap(err, "init migrations")
	}
	defer func() { _, _ = m.Close() }()
	m.Log = zapLogger{log: log}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return false, nil
		}
		return false, errors.Wrap(err, "apply migrations")
	}
	return true, nil
}

// DriverURL rewrites a postgres:// url to the scheme the pgx v5 migrate
// driver registers.
func DriverURL(databaseURL string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(databaseURL, scheme); ok {
			return pgxScheme + rest
		}
	}
	return databaseURL
}
