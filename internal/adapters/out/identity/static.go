// Package identity provides VerificationChecker and UserDirectory
// implementations. User accounts live in an external identity system; these
// adapters cover deployments where that system exports a static snapshot,
// and the permissive checker covers development environments.
package identity

import (
	"context"

	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/core/ports"
	"carrycampus/internal/pkg/errs"
)

// StaticVerificationChecker reports verification from a fixed set of user ids.
type StaticVerificationChecker struct {
	verified map[kernel.UUID]struct{}
}

// NewStaticVerificationChecker creates a checker that treats the given users
// as verified and everyone else as unverified.
func NewStaticVerificationChecker(verified ...kernel.UUID) *StaticVerificationChecker {
	set := make(map[kernel.UUID]struct{}, len(verified))
	for _, id := range verified {
		set[id] = struct{}{}
	}
	return &StaticVerificationChecker{verified: set}
}

// IsVerified reports whether the user is in the verified set.
func (c *StaticVerificationChecker) IsVerified(_ context.Context, userID kernel.UUID) (bool, error) {
	if err := userID.Validate(); err != nil {
		return false, err
	}

	_, ok := c.verified[userID]
	return ok, nil
}

// PermissiveVerificationChecker treats every user as verified. Development
// use only.
type PermissiveVerificationChecker struct{}

// NewPermissiveVerificationChecker creates a checker that verifies everyone.
func NewPermissiveVerificationChecker() PermissiveVerificationChecker {
	return PermissiveVerificationChecker{}
}

// IsVerified always reports true.
func (PermissiveVerificationChecker) IsVerified(_ context.Context, userID kernel.UUID) (bool, error) {
	if err := userID.Validate(); err != nil {
		return false, err
	}
	return true, nil
}

// StaticUserDirectory resolves display fields from a fixed map.
type StaticUserDirectory struct {
	users map[kernel.UUID]ports.UserInfo
}

// NewStaticUserDirectory creates a directory over the given users.
func NewStaticUserDirectory(users map[kernel.UUID]ports.UserInfo) *StaticUserDirectory {
	if users == nil {
		users = make(map[kernel.UUID]ports.UserInfo)
	}
	return &StaticUserDirectory{users: users}
}

// Lookup returns the user's display fields, or NotFoundError for an unknown user.
func (d *StaticUserDirectory) Lookup(_ context.Context, userID kernel.UUID) (ports.UserInfo, error) {
	if err := userID.Validate(); err != nil {
		return ports.UserInfo{}, err
	}

	info, ok := d.users[userID]
	if !ok {
		return ports.UserInfo{}, errs.NewNotFoundError("user", userID.String())
	}
	return info, nil
}
