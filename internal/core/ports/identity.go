package ports

import (
	"context"

	"carrycampus/internal/core/domain/model/kernel"
)

// VerificationChecker reports whether a user's account carries the verified
// flag. Identity verification itself is an external workflow; only the check
// is consumed here, before a fulfiller may accept a request.
type VerificationChecker interface {
	IsVerified(ctx context.Context, userID kernel.UUID) (bool, error)
}

// UserInfo carries the display fields queries join onto request rows.
type UserInfo struct {
	Name    string
	Contact string
	Email   string
}

// UserDirectory resolves user display fields. Users are owned by the external
// identity system; the core only reads names and addresses for presentation
// and email notifications. Returns NotFoundError for unknown users.
type UserDirectory interface {
	Lookup(ctx context.Context, userID kernel.UUID) (UserInfo, error)
}
