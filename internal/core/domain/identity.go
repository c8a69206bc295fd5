package domain

import "time"

// Identity is the caller resolved from a verified session token. The zero
// value is the anonymous caller.
type Identity struct {
	AccountID int64
	FirstName string
	LastName  string
	Email     string
	Role      Role
	TokenID   string
	ExpiresAt time.Time
}

// Anonymous is the identity of a request without a valid session.
var Anonymous = Identity{}

// Authenticated reports whether the identity came from a valid session token.
func (i Identity) Authenticated() bool {
	return i.AccountID != 0 && i.Role != ""
}

// Elevated reports whether the caller is an employee or an admin.
func (i Identity) Elevated() bool {
	return i.Authenticated() && i.Role.Elevated()
}

// CanManageAccount grants access to an account to its owner and to elevated roles.
func (i Identity) CanManageAccount(accountID int64) bool {
	if !i.Authenticated() {
		return false
	}
	return i.AccountID == accountID || i.Role.Elevated()
}
