package handler

import (
	"strings"

	"github.com/cse-motors/dealership/internal/api/validation"
)

// --- Account forms ---

type registerForm struct {
	FirstName string `form:"account_firstname" validate:"required,alpha"`
	LastName  string `form:"account_lastname"  validate:"required,alpha"`
	Email     string `form:"account_email"     validate:"required,email,email_available"`
	Password  string `form:"account_password"  validate:"required,strongpassword"`
}

func (f *registerForm) Normalize() {
	f.FirstName = validation.Clean(f.FirstName)
	f.LastName = validation.Clean(f.LastName)
	f.Email = validation.NormalizeEmail(validation.Clean(f.Email))
	f.Password = strings.TrimSpace(f.Password)
}

type loginForm struct {
	Email    string `form:"account_email"    validate:"required,email"`
	Password string `form:"account_password" validate:"required,strongpassword"`
}

func (f *loginForm) Normalize() {
	f.Email = validation.NormalizeEmail(validation.Clean(f.Email))
	f.Password = strings.TrimSpace(f.Password)
}

type updateAccountForm struct {
	AccountID string `form:"account_id"        validate:"required,digits"`
	FirstName string `form:"account_firstname" validate:"required,alpha"`
	LastName  string `form:"account_lastname"  validate:"required,alpha"`
	Email     string `form:"account_email"     validate:"required,email,email_available_except=AccountID"`
}

func (f *updateAccountForm) Normalize() {
	f.AccountID = strings.TrimSpace(f.AccountID)
	f.FirstName = validation.Clean(f.FirstName)
	f.LastName = validation.Clean(f.LastName)
	f.Email = validation.NormalizeEmail(validation.Clean(f.Email))
}

type changePasswordForm struct {
	AccountID string `form:"account_id"       validate:"required,digits"`
	Password  string `form:"account_password" validate:"required,strongpassword"`
}

func (f *changePasswordForm) Normalize() {
	f.AccountID = strings.TrimSpace(f.AccountID)
	f.Password = strings.TrimSpace(f.Password)
}

// deleteAccountForm re-verifies the password of the account being removed.
// The names are echoed only.
type deleteAccountForm struct {
	AccountID string `form:"account_id"        validate:"required,digits"`
	FirstName string `form:"account_firstname"`
	LastName  string `form:"account_lastname"`
	Email     string `form:"account_email"     validate:"required,email"`
	Password  string `form:"account_password"  validate:"required,strongpassword,password_matches=Email AccountID"`
}

func (f *deleteAccountForm) Normalize() {
	f.AccountID = strings.TrimSpace(f.AccountID)
	f.FirstName = validation.Clean(f.FirstName)
	f.LastName = validation.Clean(f.LastName)
	f.Email = validation.NormalizeEmail(validation.Clean(f.Email))
	f.Password = strings.TrimSpace(f.Password)
}
