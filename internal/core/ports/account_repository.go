package ports

import (
	"context"

	"github.com/cse-motors/dealership/internal/core/domain"
)

// AccountRepository defines persistence operations for accounts.
// Update and delete operations return domain.ErrNotFound when no row changed.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
	// EmailExists reports whether any account uses email. When exceptID is
	// non-zero that account is ignored, so an unchanged email never conflicts
	// with itself.
	EmailExists(ctx context.Context, email string, exceptID int64) (bool, error)
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.Account, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	Delete(ctx context.Context, id int64) error
}
