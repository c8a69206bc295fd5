package domain

import (
	"fmt"
	"time"
)

// Role is the account type stored alongside every account.
type Role string

const (
	RoleClient   Role = "Client"
	RoleEmployee Role = "Employee"
	RoleAdmin    Role = "Admin"
)

// ParseRole converts a stored or token-carried role name into a Role.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleClient, RoleEmployee, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("unknown account role %q", s)
	}
}

// Elevated reports whether the role may manage inventory and other accounts.
func (r Role) Elevated() bool {
	return r == RoleEmployee || r == RoleAdmin
}

// Account models a registered site user.
type Account struct {
	ID           int64     `json:"account_id"`
	FirstName    string    `json:"account_firstname"`
	LastName     string    `json:"account_lastname"`
	Email        string    `json:"account_email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"account_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
