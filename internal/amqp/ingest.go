package amqp

import (
	"context"

	"finflow-ledger/internal/service"
)

// NewIngestHandler records each message through the same path as the HTTP
// integration endpoint.
func NewIngestHandler(svc service.TransactionService) Handler {
	return func(ctx context.Context, msg *TransactionMessage) error {
		_, err := svc.RecordExternal(ctx, msg.Phone, msg.Raw())
		return err
	}
}
