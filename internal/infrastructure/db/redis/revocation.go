package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cse-motors/dealership/internal/core/domain"
)

// Revoker keeps the sessions ended before their expiry.
// Key formats:
//
//	session:revoked:<token_id>          one token, expiring with it
//	session:revoked:account:<id>        every token of a deleted account,
//	                                    expiring after one session lifetime
type Revoker struct {
	client     *redis.Client
	sessionTTL time.Duration
	now        func() time.Time
}

// NewRevoker creates a Revoker wrapping the given Redis client. sessionTTL
// is the longest lifetime of an issued token.
func NewRevoker(client *redis.Client, sessionTTL time.Duration) *Revoker {
	return &Revoker{client: client, sessionTTL: sessionTTL, now: time.Now}
}

// Revoke records tokenID until the token would have expired anyway.
// Tokens already past their expiry need no entry.
func (r *Revoker) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(r.now())
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, tokenKey(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// RevokeAccount rejects every token of accountID for one session lifetime,
// after which all tokens issued before the call have expired.
func (r *Revoker) RevokeAccount(ctx context.Context, accountID int64) error {
	if accountID == 0 || r.sessionTTL <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, accountKey(accountID), "1", r.sessionTTL).Err(); err != nil {
		return fmt.Errorf("revoke account sessions: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token of id, or its whole account, was revoked.
func (r *Revoker) IsRevoked(ctx context.Context, id domain.Identity) (bool, error) {
	keys := revocationKeys(id)
	if len(keys) == 0 {
		return false, nil
	}
	n, err := r.client.Exists(ctx, keys...).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func revocationKeys(id domain.Identity) []string {
	var keys []string
	if id.TokenID != "" {
		keys = append(keys, tokenKey(id.TokenID))
	}
	if id.AccountID != 0 {
		keys = append(keys, accountKey(id.AccountID))
	}
	return keys
}

func tokenKey(tokenID string) string {
	return "session:revoked:" + tokenID
}

func accountKey(accountID int64) string {
	return "session:revoked:account:" + strconv.FormatInt(accountID, 10)
}
