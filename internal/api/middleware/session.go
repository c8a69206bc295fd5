package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cse-motors/dealership/internal/api/metrics"
	"github.com/cse-motors/dealership/internal/core/domain"
	"github.com/cse-motors/dealership/internal/core/ports"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "jwt"

const identityKey = "identity"

// Session resolves the session cookie into a domain.Identity for every
// request. Missing, invalid, expired or revoked tokens resolve to Anonymous;
// a cookie that does not verify is also cleared. revoker may be nil.
func Session(tokens ports.TokenVerifier, revoker ports.SessionRevoker, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(identityKey, domain.Anonymous)

			ck, err := c.Cookie(SessionCookie)
			if err != nil || ck.Value == "" {
				return next(c)
			}

			id, err := tokens.Verify(ck.Value)
			if err != nil {
				log.Debug().Err(err).Msg("session token rejected")
				ClearSessionCookie(c)
				return next(c)
			}

			if revoker != nil {
				revoked, err := revoker.IsRevoked(c.Request().Context(), id)
				switch {
				case err != nil:
					// Fail open: the token still expires on its own.
					metrics.RevocationChecksTotal.WithLabelValues("error").Inc()
					log.Warn().Err(err).Str("jti", id.TokenID).Msg("revocation check failed")
				case revoked:
					metrics.RevocationChecksTotal.WithLabelValues("hit").Inc()
					ClearSessionCookie(c)
					return next(c)
				default:
					metrics.RevocationChecksTotal.WithLabelValues("miss").Inc()
				}
			}

			c.Set(identityKey, id)
			return next(c)
		}
	}
}

// IdentityFrom returns the caller resolved by Session. Requests that did
// not pass through Session are anonymous.
func IdentityFrom(c echo.Context) domain.Identity {
	id, ok := c.Get(identityKey).(domain.Identity)
	if !ok {
		return domain.Anonymous
	}
	return id
}

// SetIdentity replaces the caller for the rest of the request, e.g. right
// after a login or logout.
func SetIdentity(c echo.Context, id domain.Identity) {
	c.Set(identityKey, id)
}

// CookieOptions controls the attributes of the session cookie.
type CookieOptions struct {
	// MaxAge in seconds; it must equal the token lifetime.
	MaxAge int
	Secure bool
}

// SetSessionCookie hands token to the client as an HTTP-only cookie.
func SetSessionCookie(c echo.Context, token string, opts CookieOptions) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   opts.MaxAge,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
