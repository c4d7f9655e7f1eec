// internal/api/handler/respond.go
package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"finflow-ledger/internal/api/types"
	"finflow-ledger/internal/util"
)

// DefaultTimeout bounds every request handled by the router.
const DefaultTimeout = 30 * time.Second

const maxBodyBytes = 1 << 20

// responder holds the response helpers shared by every handler.
type responder struct {
	logger *slog.Logger
}

// Helper function to send JSON responses.
func (h responder) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithError maps service errors onto HTTP statuses. Anything not
// recognised is logged and reported as a bare 500.
func (h responder) respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	statusCode := http.StatusInternalServerError
	body := types.ErrorResponse{Error: "Internal server error"}

	switch {
	case util.IsError(err, util.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		body.Error = "Unauthorized"
	case util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		body.Error = "Invalid input"
		if field, ok := util.InvalidField(err); ok {
			body.Field = field
			body.Error = "Invalid " + field
		}
	case util.IsError(err, util.ErrUserNotFound):
		statusCode = http.StatusNotFound
		body.Error = "User not found"
	case util.IsError(err, util.ErrNotFound):
		statusCode = http.StatusNotFound
		body.Error = "Resource not found"
	case util.IsError(err, util.ErrConflict):
		statusCode = http.StatusConflict
		body.Error = "A resource with that name already exists"
	default:
		op, userID, ok := util.StoreFailure(err)
		if !ok {
			op = "unknown"
		}
		if id := userIDFrom(r.Context()); id != "" {
			userID = id
		}
		h.logger.ErrorContext(r.Context(), "Unhandled service error",
			"op", op,
			"user_id", userID,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err)
	}

	h.respondWithJSON(w, statusCode, body)
}

// readBody reads a bounded request body; a malformed body is InvalidInput("body").
func readBody(r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil || len(data) == 0 || !json.Valid(data) {
		return nil, util.InvalidInput("body")
	}
	return data, nil
}

// decodeBody decodes a JSON request body into dst.
func decodeBody(r *http.Request, dst interface{}) error {
	data, err := readBody(r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return util.InvalidInput("body")
	}
	return nil
}

type userIDKey struct{}

func withUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

func userIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)
	return id
}
