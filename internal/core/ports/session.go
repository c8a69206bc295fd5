package ports

import (
	"context"
	"time"

	"github.com/cse-motors/dealership/internal/core/domain"
)

// PasswordHasher computes and checks salted one-way password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify reports whether password matches hash in constant time.
	Verify(hash, password string) bool
}

// TokenIssuer signs session tokens for an account.
type TokenIssuer interface {
	Issue(account *domain.Account) (token string, expiresAt time.Time, err error)
}

// TokenVerifier resolves a session token back into an identity.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}

// SessionRevoker keeps the sessions that were ended before their expiry.
type SessionRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	// RevokeAccount ends every live session of an account, including ones
	// held by another browser.
	RevokeAccount(ctx context.Context, accountID int64) error
	IsRevoked(ctx context.Context, id domain.Identity) (bool, error)
}
