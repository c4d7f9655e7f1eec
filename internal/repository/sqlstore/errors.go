// Package sqlstore implements the repository interfaces on top of sqlx. The
// same queries run on PostgreSQL and SQLite: they are written with `?`
// placeholders and rebound for the executor's driver.
package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	"finflow-ledger/internal/util"
	"finflow-ledger/pkg/db"
)

// translate maps driver errors onto repository sentinels and wraps the rest.
func translate(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return util.ErrNotFound
	}
	if db.IsUniqueViolation(err) {
		return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), util.ErrDuplicateEntry)
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// expectOne turns an UPDATE/DELETE that matched nothing into util.ErrNotFound.
func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return util.ErrNotFound
	}
	return nil
}
