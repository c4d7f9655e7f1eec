// internal/api/handler/identity.go
package handler

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"finflow-ledger/internal/service"
	"finflow-ledger/internal/util"
)

const (
	// DefaultEmailHeader is set by the authenticating reverse proxy.
	DefaultEmailHeader = "X-Auth-Request-Email"
	// IntegrationTokenHeader carries the shared secret of the phone integration.
	IntegrationTokenHeader = "X-Integration-Token"
)

// Identity extracts the caller principal and resolves it to a user.
type Identity struct {
	responder
	users            *service.UserResolver
	emailHeader      string
	integrationToken string
}

// NewIdentity creates a new Identity. An empty token leaves the phone path ungated.
func NewIdentity(users *service.UserResolver, emailHeader, integrationToken string, logger *slog.Logger) *Identity {
	if emailHeader == "" {
		emailHeader = DefaultEmailHeader
	}
	return &Identity{
		responder:        responder{logger: logger},
		users:            users,
		emailHeader:      emailHeader,
		integrationToken: integrationToken,
	}
}

type principalKey struct{}

// Middleware stores the request principal in the context. The phone is read
// from the query string or, failing that, from a JSON body.
func (i *Identity) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := service.Principal{
			Email: strings.TrimSpace(r.Header.Get(i.emailHeader)),
			Phone: strings.TrimSpace(r.URL.Query().Get("phone")),
		}
		if p.Phone == "" && r.Body != nil && r.ContentLength != 0 {
			data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
			if err == nil {
				p.Phone = bodyPhone(data)
			}
			r.Body = io.NopCloser(bytes.NewReader(data))
		}

		if p.External() && i.integrationToken != "" {
			got := r.Header.Get(IntegrationTokenHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(i.integrationToken)) != 1 {
				i.respondWithError(w, r, util.ErrUnauthorized)
				return
			}
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey{}, p)))
	})
}

func bodyPhone(data []byte) string {
	var body struct {
		Phone json.RawMessage `json:"phone"`
	}
	if json.Unmarshal(data, &body) != nil || len(body.Phone) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(body.Phone, &s) == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if json.Unmarshal(body.Phone, &n) == nil {
		return n.String()
	}
	return ""
}

func principalFrom(ctx context.Context) service.Principal {
	p, _ := ctx.Value(principalKey{}).(service.Principal)
	return p
}

// resolve returns the user behind the request principal along with a request
// whose context carries the user id. sessionOnly ignores the phone identity.
func (i *Identity) resolve(r *http.Request, sessionOnly bool) (*http.Request, string, error) {
	p := principalFrom(r.Context())
	if sessionOnly {
		p.Phone = ""
	}
	user, err := i.users.Resolve(r.Context(), p)
	if err != nil {
		return r, "", err
	}
	return r.WithContext(withUserID(r.Context(), user.ID)), user.ID, nil
}
