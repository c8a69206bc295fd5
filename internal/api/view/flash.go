package view

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

const (
	noticeCookie = "notice"
	noticeKey    = "notice"
)

// SetFlash stores msg for the next rendered page of this client.
func SetFlash(c echo.Context, msg string) {
	c.SetCookie(&http.Cookie{
		Name:     noticeCookie,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Flash moves a pending notice from its cookie into the request context and
// clears the cookie, so each notice is shown once.
func Flash() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if ck, err := c.Cookie(noticeCookie); err == nil {
				if msg, err := url.QueryUnescape(ck.Value); err == nil && msg != "" {
					c.Set(noticeKey, msg)
				}
				c.SetCookie(&http.Cookie{
					Name:     noticeCookie,
					Path:     "/",
					MaxAge:   -1,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			return next(c)
		}
	}
}

// NoticeFrom returns the notice carried over from the previous response.
func NoticeFrom(c echo.Context) string {
	msg, _ := c.Get(noticeKey).(string)
	return msg
}
