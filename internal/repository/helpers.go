package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/gantry/internal/domain"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

func formatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// Calendar columns use domain.DateLayout; created_at/updated_at use RFC3339.
func parseDate(dst *time.Time, raw, column string) error {
	v, err := time.Parse(domain.DateLayout, raw)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", column, err)
	}
	*dst = v
	return nil
}

func parseTimestamp(dst *time.Time, raw, column string) error {
	v, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", column, err)
	}
	*dst = v
	return nil
}

// notFound maps sql.ErrNoRows onto ErrNotFound for the named entity.
func notFound(err error, entity, key string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %q: %w", entity, key, ErrNotFound)
	}
	return fmt.Errorf("scanning %s: %w", entity, err)
}

// requireAffected turns a zero-row UPDATE or DELETE into ErrNotFound.
func requireAffected(res sql.Result, entity, key string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %q: %w", entity, key, ErrNotFound)
	}
	return nil
}
