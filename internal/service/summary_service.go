// internal/service/summary_service.go
package service

import (
	"context"

	"finflow-ledger/internal/report"
	"finflow-ledger/internal/repository"
	"finflow-ledger/internal/util"
)

// SummaryService computes the dashboard figures.
type SummaryService interface {
	// Summary aggregates the user's transactions for mode, restricted to
	// walletIDs when any are given.
	Summary(ctx context.Context, userID string, mode report.Mode, walletIDs []string) (report.Summary, error)
}

type summaryService struct {
	deps *Deps
}

// NewSummaryService creates a new instance of SummaryService.
func NewSummaryService(deps *Deps) SummaryService {
	return &summaryService{deps: deps}
}

func (s *summaryService) Summary(ctx context.Context, userID string, mode report.Mode, walletIDs []string) (report.Summary, error) {
	// The whole history is loaded: the balance is lifetime even in month mode.
	txs, err := s.deps.Transactions.ListTransactions(ctx, s.deps.DBExecutor, repository.TransactionFilter{UserID: userID})
	if err != nil {
		return report.Summary{}, util.NewStoreError("list transactions", err)
	}
	for i := range txs {
		s.deps.localize(&txs[i])
	}
	return report.Aggregate(txs, walletIDs, mode, s.deps.now()), nil
}
