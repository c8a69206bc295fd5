package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cse-motors/dealership/internal/core/domain"
	"github.com/cse-motors/dealership/internal/core/ports"
)

// AccountService implements registration, login and account maintenance.
type AccountService struct {
	repo   ports.AccountRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	now    func() time.Time
}

func NewAccountService(repo ports.AccountRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer) *AccountService {
	return &AccountService{repo: repo, hasher: hasher, tokens: tokens, now: time.Now}
}

// Register stores a new Client account with a hashed password.
func (s *AccountService) Register(ctx context.Context, reg domain.Registration) (*domain.Account, error) {
	hash, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &domain.Account{
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Email:        reg.Email,
		PasswordHash: hash,
		Role:         domain.RoleClient,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("register account: %w", err)
	}
	return created, nil
}

// Login checks the password and signs a session token. Unknown emails and
// wrong passwords produce the same error.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	account, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return "", nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(account.PasswordHash, password) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, _, err := s.tokens.Issue(account)
	if err != nil {
		return "", nil, err
	}
	account.PasswordHash = ""
	return token, account, nil
}

func (s *AccountService) Get(ctx context.Context, id int64) (*domain.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get account %d: %w", id, err)
	}
	return account, nil
}

// UpdateProfile replaces first name, last name and email. The password hash is untouched.
func (s *AccountService) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.Account, error) {
	account, err := s.repo.UpdateProfile(ctx, update)
	if err != nil {
		return nil, fmt.Errorf("update account %d: %w", update.AccountID, err)
	}
	return account, nil
}

// ChangePassword replaces only the password hash.
func (s *AccountService) ChangePassword(ctx context.Context, change domain.PasswordChange) error {
	hash, err := s.hasher.Hash(change.Password)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePasswordHash(ctx, change.AccountID, hash); err != nil {
		return fmt.Errorf("change password for account %d: %w", change.AccountID, err)
	}
	return nil
}

func (s *AccountService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete account %d: %w", id, err)
	}
	return nil
}
