// internal/service/users.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"finflow-ledger/internal/domain"
	"finflow-ledger/internal/util"
)

// Principal is the caller identity extracted from a request. Phone marks the
// external integration path, Email the session path; when both are present
// the phone wins.
type Principal struct {
	Email string
	Phone string
}

// External reports whether the principal came in through the integration path.
func (p Principal) External() bool {
	return strings.TrimSpace(p.Phone) != ""
}

// UserResolver maps a Principal onto a stored user.
type UserResolver struct {
	deps *Deps
}

// NewUserResolver creates a new UserResolver.
func NewUserResolver(deps *Deps) *UserResolver {
	return &UserResolver{deps: deps}
}

// Resolve returns the user behind p. It fails with util.ErrUnauthorized when
// p carries no identity and with util.ErrNotFound when nobody matches it.
func (r *UserResolver) Resolve(ctx context.Context, p Principal) (*domain.User, error) {
	var (
		user *domain.User
		err  error
	)
	switch {
	case p.External():
		user, err = r.deps.Users.GetUserByPhone(ctx, r.deps.DBExecutor, strings.TrimSpace(p.Phone))
	case strings.TrimSpace(p.Email) != "":
		user, err = r.deps.Users.GetUserByEmail(ctx, r.deps.DBExecutor, strings.TrimSpace(p.Email))
	default:
		return nil, util.ErrUnauthorized
	}

	if errors.Is(err, util.ErrNotFound) {
		return nil, fmt.Errorf("%w: %w", util.ErrNotFound, util.ErrUserNotFound)
	}
	if err != nil {
		return nil, util.NewStoreError("resolve user", err)
	}
	return user, nil
}
