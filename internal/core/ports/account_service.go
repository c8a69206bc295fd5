package ports

import (
	"context"

	"github.com/cse-motors/dealership/internal/core/domain"
)

// AccountService defines the account use cases behind the account pages.
type AccountService interface {
	Register(ctx context.Context, reg domain.Registration) (*domain.Account, error)
	// Login returns a signed session token for a matching email/password pair.
	// Any mismatch, including an unknown email, is domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.Account, error)
	Get(ctx context.Context, id int64) (*domain.Account, error)
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.Account, error)
	ChangePassword(ctx context.Context, change domain.PasswordChange) error
	Delete(ctx context.Context, id int64) error
}
