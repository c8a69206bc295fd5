package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/cse-motors/dealership/internal/core/domain"
)

const accountColumns = `account_id, account_firstname, account_lastname, account_email,
	account_password, account_type::text, created_at, updated_at`

type AccountRepository struct {
	db Querier
}

func NewAccountRepository(db Querier) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, a *domain.Account) (*domain.Account, error) {
	role := a.Role
	if role == "" {
		role = domain.RoleClient
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO account (account_firstname, account_lastname, account_email, account_password, account_type)
		VALUES ($1, $2, $3, $4, $5::text::account_type)
		RETURNING `+accountColumns,
		a.FirstName, a.LastName, a.Email, a.PasswordHash, string(role))

	created, err := scanAccount(row)
	if err != nil {
		if derr := constraintError(err); derr != nil {
			return nil, derr
		}
		return nil, oops.Code("ACCOUNT_CREATE_FAILED").With("email", a.Email).Wrap(err)
	}
	return created, nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM account WHERE account_email = $1`, email)
	a, err := scanAccount(row)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, oops.Code("ACCOUNT_GET_FAILED").With("email", email).Wrap(err)
	}
	return a, nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM account WHERE account_id = $1`, id)
	a, err := scanAccount(row)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, oops.Code("ACCOUNT_GET_FAILED").With("account_id", id).Wrap(err)
	}
	return a, nil
}

// EmailExists ignores the account exceptID. Identity columns start at 1, so
// an exceptID of 0 excludes nothing.
func (r *AccountRepository) EmailExists(ctx context.Context, email string, exceptID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM account WHERE account_email = $1 AND account_id <> $2)`,
		email, exceptID).Scan(&exists)
	if err != nil {
		return false, oops.Code("ACCOUNT_EMAIL_CHECK_FAILED").With("email", email).Wrap(err)
	}
	return exists, nil
}

func (r *AccountRepository) UpdateProfile(ctx context.Context, u domain.ProfileUpdate) (*domain.Account, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE account
		SET account_firstname = $1, account_lastname = $2, account_email = $3, updated_at = now()
		WHERE account_id = $4
		RETURNING `+accountColumns,
		u.FirstName, u.LastName, u.Email, u.AccountID)

	a, err := scanAccount(row)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		if derr := constraintError(err); derr != nil {
			return nil, derr
		}
		return nil, oops.Code("ACCOUNT_UPDATE_FAILED").With("account_id", u.AccountID).Wrap(err)
	}
	return a, nil
}

func (r *AccountRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE account SET account_password = $1, updated_at = now() WHERE account_id = $2`, hash, id)
	if err != nil {
		return oops.Code("ACCOUNT_PASSWORD_UPDATE_FAILED").With("account_id", id).Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM account WHERE account_id = $1`, id)
	if err != nil {
		return oops.Code("ACCOUNT_DELETE_FAILED").With("account_id", id).Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		a    domain.Account
		role string
	)
	if err := row.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email,
		&a.PasswordHash, &role, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	parsed, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}
	a.Role = parsed
	return &a, nil
}
