package ports

import (
	"travelagency/internal/core/domain/model/access"
	"travelagency/internal/core/domain/model/user"
)

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)

	// Compare returns nil when plain matches hash.
	Compare(hash, plain string) error
}

// TokenIssuer creates bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(u *user.User) (string, error)
}

// TokenVerifier turns a bearer token into a principal. Invalid or expired
// tokens yield errs.UnauthenticatedError.
type TokenVerifier interface {
	Verify(token string) (access.Principal, error)
}
