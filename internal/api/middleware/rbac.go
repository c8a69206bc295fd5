package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cse-motors/dealership/internal/api/metrics"
	"github.com/cse-motors/dealership/internal/api/view"
	"github.com/cse-motors/dealership/internal/core/domain"
)

const (
	loginPath    = "/account/login"
	loginNotice  = "Please log in."
	deniedNotice = "You do not have access to that page."
)

// Deny ends a request stopped by an authorization gate. Anonymous callers
// are sent to the login page with a notice; authenticated callers get a 403
// without any detail about the protected resource.
func Deny(c echo.Context, policy string) error {
	metrics.AuthorizationDenialsTotal.WithLabelValues(policy).Inc()
	if !IdentityFrom(c).Authenticated() {
		view.SetFlash(c, loginNotice)
		return c.Redirect(http.StatusSeeOther, loginPath)
	}
	return echo.NewHTTPError(http.StatusForbidden, deniedNotice)
}

// RequireAuthenticated lets any logged-in caller through.
func RequireAuthenticated() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !IdentityFrom(c).Authenticated() {
				return Deny(c, "authenticated")
			}
			return next(c)
		}
	}
}

// RBAC enforces role-based access control.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := IdentityFrom(c)
			if !id.Authenticated() {
				return Deny(c, "role")
			}
			if _, ok := allowed[id.Role]; !ok {
				return Deny(c, "role")
			}
			return next(c)
		}
	}
}

// RequireElevated is RBAC for the employee and admin roles.
func RequireElevated() echo.MiddlewareFunc {
	return RBAC(domain.RoleEmployee, domain.RoleAdmin)
}

// RequireAccountOwner lets through the owner of the account named by the
// path parameter, and elevated roles.
func RequireAccountOwner(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			accountID, err := strconv.ParseInt(c.Param(param), 10, 64)
			if err != nil || !IdentityFrom(c).CanManageAccount(accountID) {
				return Deny(c, "owner")
			}
			return next(c)
		}
	}
}
