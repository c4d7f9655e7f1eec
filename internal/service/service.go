// internal/service/service.go
package service

import (
	"context"
	"fmt"
	"time"

	"finflow-ledger/internal/domain"
	"finflow-ledger/internal/repository"
	"finflow-ledger/internal/util"
	"finflow-ledger/pkg/db"
)

// Deps bundles the persistence collaborators every service needs.
type Deps struct {
	DBBeginner   db.DBTxBeginner       // For starting transactions (e.g., *sqlx.DB)
	DBExecutor   repository.DBExecutor // For non-transactional reads (e.g., *sqlx.DB)
	Users        repository.UserRepository
	Wallets      repository.WalletRepository
	Categories   repository.CategoryRepository
	Transactions repository.TransactionRepository
	BeginTx      db.BeginTxFunc
	CommitTx     db.CommitTxFunc
	RollbackTx   db.RollbackTxFunc

	// Now is the server clock. Location is where calendar months are cut.
	Now      func() time.Time
	Location *time.Location
}

func (d *Deps) now() time.Time {
	if d.Now == nil {
		return time.Now().In(d.location())
	}
	return d.Now().In(d.location())
}

func (d *Deps) location() *time.Location {
	if d.Location == nil {
		return time.UTC
	}
	return d.Location
}

// inTx runs fn inside a database transaction, committing only when fn succeeds.
func (d *Deps) inTx(ctx context.Context, op string, fn func(q repository.DBExecutor) error) error {
	txController, err := d.BeginTx(ctx, d.DBBeginner)
	if err != nil {
		return util.NewStoreError(op+": begin transaction", err)
	}
	defer d.RollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return fmt.Errorf("%s: transaction controller does not implement DBExecutor", op)
	}

	if err := fn(txExecutor); err != nil {
		return err
	}

	if err := d.CommitTx(txController); err != nil {
		return util.NewStoreError(op+": commit transaction", err)
	}
	return nil
}

// localize moves stored timestamps into the configured location so calendar
// months are cut where the user lives.
func (d *Deps) localize(tx *domain.Transaction) {
	loc := d.location()
	tx.Date = tx.Date.In(loc)
	tx.CreatedAt = tx.CreatedAt.In(loc)
}
