package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/cse-motors/dealership/internal/core/domain"
	"github.com/cse-motors/dealership/internal/core/ports"
)

// ConsistencyChecker answers the validation questions that depend on stored
// state rather than on the submitted string alone. Each method issues a
// single read against the persistence gateway.
type ConsistencyChecker struct {
	accounts ports.AccountRepository
	classes  ports.ClassificationRepository
	hasher   ports.PasswordHasher
}

func NewConsistencyChecker(accounts ports.AccountRepository, classes ports.ClassificationRepository, hasher ports.PasswordHasher) *ConsistencyChecker {
	return &ConsistencyChecker{accounts: accounts, classes: classes, hasher: hasher}
}

// EmailExists reports whether any account uses email.
func (c *ConsistencyChecker) EmailExists(ctx context.Context, email string) (bool, error) {
	return c.EmailExistsForOther(ctx, email, 0)
}

// EmailExistsForOther reports whether an account other than exceptID uses email.
func (c *ConsistencyChecker) EmailExistsForOther(ctx context.Context, email string, exceptID int64) (bool, error) {
	exists, err := c.accounts.EmailExists(ctx, email, exceptID)
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return exists, nil
}

// ClassificationExists reports whether a classification named name exists.
func (c *ConsistencyChecker) ClassificationExists(ctx context.Context, name string) (bool, error) {
	exists, err := c.classes.NameExists(ctx, name)
	if err != nil {
		return false, fmt.Errorf("check classification name: %w", err)
	}
	return exists, nil
}

// ClassificationKnown reports whether id names a stored classification.
func (c *ConsistencyChecker) ClassificationKnown(ctx context.Context, id int64) (bool, error) {
	_, err := c.classes.FindByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check classification id: %w", err)
	}
	return true, nil
}

// PasswordMatches re-verifies the password of the account registered under
// email. The account must also be accountID; a missing account is no match.
func (c *ConsistencyChecker) PasswordMatches(ctx context.Context, email string, accountID int64, password string) (bool, error) {
	account, err := c.accounts.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check password: %w", err)
	}
	if account.ID != accountID {
		return false, nil
	}
	return c.hasher.Verify(account.PasswordHash, password), nil
}
