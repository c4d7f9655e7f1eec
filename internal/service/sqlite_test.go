// internal/service/sqlite_test.go
package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"finflow-ledger/internal/domain"
	"finflow-ledger/internal/repository/sqlstore"
	"finflow-ledger/pkg/db"
)

// newSQLiteDeps wires Deps to a fresh migrated SQLite database.
func newSQLiteDeps(t *testing.T, now time.Time) (*Deps, *sqlx.DB) {
	t.Helper()

	cfg := db.Config{Driver: db.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "ledger.db")}
	conn, err := db.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.RunMigrations(cfg))

	return &Deps{
		DBBeginner:   conn,
		DBExecutor:   conn,
		Users:        sqlstore.NewUserRepository(),
		Wallets:      sqlstore.NewWalletRepository(),
		Categories:   sqlstore.NewCategoryRepository(),
		Transactions: sqlstore.NewTransactionRepository(),
		BeginTx:      db.BeginTx,
		CommitTx:     db.CommitTx,
		RollbackTx:   db.RollbackTx,
		Now:          func() time.Time { return now },
		Location:     time.UTC,
	}, conn
}

func seedUser(t *testing.T, deps *Deps, email, phone string) *domain.User {
	t.Helper()
	var p *string
	if phone != "" {
		p = &phone
	}
	u := domain.NewUser(email, p)
	require.NoError(t, deps.Users.CreateUser(context.Background(), deps.DBExecutor, u))
	return u
}
