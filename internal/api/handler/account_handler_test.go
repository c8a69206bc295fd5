package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cse-motors/dealership/internal/api/middleware"
	"github.com/cse-motors/dealership/internal/api/view"
	"github.com/cse-motors/dealership/internal/core/domain"
)

func registerValues(email string) url.Values {
	return url.Values{
		"account_firstname": {"Ada"},
		"account_lastname":  {"Lovelace"},
		"account_email":     {email},
		"account_password":  {strongPassword},
	}
}

func TestAccountHandler_Register_Success(t *testing.T) {
	env := newTestEnv()
	env.accounts.registerFn = func(_ context.Context, reg domain.Registration) (*domain.Account, error) {
		if reg.Email != "ada@example.com" || reg.Password != strongPassword {
			t.Fatalf("unexpected registration %+v", reg)
		}
		return &domain.Account{ID: 5, FirstName: reg.FirstName, Role: domain.RoleClient}, nil
	}

	rec, err := env.serve(request{method: http.MethodPost, target: "/account/register", form: registerValues("Ada@Example.com")}, env.account.Register)

	expectStatus(t, rec, err, http.StatusSeeOther)
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/account/login" {
		t.Fatalf("expected redirect to login, got %q", loc)
	}
	if findCookie(rec, "notice") == nil {
		t.Fatalf("expected registration notice")
	}
}

func TestAccountHandler_Register_DuplicateEmail(t *testing.T) {
	env := newTestEnv()

	rec, err := env.serve(request{method: http.MethodPost, target: "/account/register", form: registerValues("USER@test.com")}, env.account.Register)

	expectStatus(t, rec, err, http.StatusBadRequest)
	if env.accounts.calls != 0 {
		t.Fatalf("no account may be created for a duplicate email")
	}
	if env.renderer.name != view.PageRegister {
		t.Fatalf("expected register view, got %q", env.renderer.name)
	}
	if !hasFieldError(env.renderer.data.Errors, "account_email") {
		t.Fatalf("expected email uniqueness error, got %+v", env.renderer.data.Errors)
	}
	if env.renderer.data.Field("account_firstname") != "Ada" {
		t.Fatalf("expected echoed first name")
	}
	if env.renderer.data.Nav == "" {
		t.Fatalf("re-rendered form must carry the navigation")
	}
}

func TestAccountHandler_Register_StorageFailure(t *testing.T) {
	env := newTestEnv()
	env.accounts.registerFn = func(context.Context, domain.Registration) (*domain.Account, error) {
		return nil, domain.ErrDuplicate
	}

	rec, err := env.serve(request{method: http.MethodPost, target: "/account/register", form: registerValues("new@example.com")}, env.account.Register)

	expectStatus(t, rec, err, http.StatusInternalServerError)
	if env.renderer.data.Notice != "Sorry, the registration failed." {
		t.Fatalf("unexpected notice %q", env.renderer.data.Notice)
	}
}

func TestAccountHandler_Login_CookieResolvesToAccount(t *testing.T) {
	env := newTestEnv()
	account := &domain.Account{ID: 1, FirstName: "Basic", LastName: "Client", Email: "user@test.com", Role: domain.RoleClient}
	env.accounts.loginFn = func(_ context.Context, email, password string) (string, *domain.Account, error) {
		if email != "user@test.com" || password != strongPassword {
			return "", nil, domain.ErrInvalidCredentials
		}
		token, _, err := env.tokens.Issue(account)
		return token, account, err
	}

	form := url.Values{"account_email": {"user@test.com"}, "account_password": {strongPassword}}
	rec, err := env.serve(request{method: http.MethodPost, target: "/account/login", form: form}, env.account.Login)

	expectStatus(t, rec, err, http.StatusSeeOther)
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/account/" {
		t.Fatalf("expected redirect to /account/, got %q", loc)
	}
	ck := findCookie(rec, middleware.SessionCookie)
	if ck == nil || !ck.HttpOnly || ck.MaxAge != 3600 {
		t.Fatalf("expected http-only session cookie, got %+v", ck)
	}

	// The next request presents the cookie.
	req := httptest.NewRequest(http.MethodGet, "/account/", nil)
	req.AddCookie(ck)
	c := env.e.NewContext(req, httptest.NewRecorder())
	var got domain.Identity
	h := middleware.Session(env.tokens, env.revoker, zerolog.Nop())(func(c echo.Context) error {
		got = middleware.IdentityFrom(c)
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("session middleware: %v", err)
	}
	if got.AccountID != account.ID {
		t.Fatalf("expected account %d, got %+v", account.ID, got)
	}
}

func TestAccountHandler_Login_WrongPasswordIsGeneric(t *testing.T) {
	env := newTestEnv()
	env.accounts.loginFn = func(context.Context, string, string) (string, *domain.Account, error) {
		return "", nil, domain.ErrInvalidCredentials
	}

	form := url.Values{"account_email": {"user@test.com"}, "account_password": {"Wr0ng!Passw0rd"}}
	rec, err := env.serve(request{method: http.MethodPost, target: "/account/login", form: form}, env.account.Login)

	expectStatus(t, rec, err, http.StatusBadRequest)
	if env.renderer.data.Notice != "Please check your credentials and try again." {
		t.Fatalf("unexpected notice %q", env.renderer.data.Notice)
	}
	if len(env.renderer.data.Errors) != 0 {
		t.Fatalf("credential mismatch must not produce field errors")
	}
	if findCookie(rec, middleware.SessionCookie) != nil {
		t.Fatalf("no session cookie on failed login")
	}
	if env.renderer.data.Field("account_email") != "user@test.com" {
		t.Fatalf("expected echoed email")
	}
}

func TestAccountHandler_Update_OwnAccountReissuesSession(t *testing.T) {
	env := newTestEnv()
	env.accounts.updateFn = func(_ context.Context, u domain.ProfileUpdate) (*domain.Account, error) {
		return &domain.Account{ID: u.AccountID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email, Role: domain.RoleClient}, nil
	}

	form := url.Values{
		"account_id":        {"1"},
		"account_firstname": {"Basic"},
		"account_lastname":  {"Client"},
		"account_email":     {"user@test.com"},
	}
	rec, err := env.serve(request{method: http.MethodPost, target: "/account/update", form: form, id: clientID}, env.account.Update)

	expectStatus(t, rec, err, http.StatusSeeOther)
	ck := findCookie(rec, middleware.SessionCookie)
	if ck == nil || ck.Value == "" {
		t.Fatalf("expected a fresh session cookie")
	}
	id, err := env.tokens.Verify(ck.Value)
	if err != nil || id.AccountID != 1 {
		t.Fatalf("reissued token must verify for account 1: %v %+v", err, id)
	}
}

type failingIssuer struct{}

func (failingIssuer) Issue(*domain.Account) (string, time.Time, error) {
	return "", time.Time{}, errors.New("signing key unavailable")
}

func TestAccountHandler_Update_ReissueFailureStillSucceeds(t *testing.T) {
	env := newTestEnv()
	env.accounts.updateFn = func(_ context.Context, u domain.ProfileUpdate) (*domain.Account, error) {
		return &domain.Account{ID: u.AccountID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email, Role: domain.RoleClient}, nil
	}
	h := NewAccountHandler(env.accounts, failingIssuer{}, env.revoker, env.runner, env.pages, zerolog.Nop())
	id := clientID
	id.TokenID = "01JKEEP"

	form := url.Values{
		"account_id":        {"1"},
		"account_firstname": {"Basic"},
		"account_lastname":  {"Client"},
		"account_email":     {"user@test.com"},
	}
	rec, err := env.serve(request{method: http.MethodPost, target: "/account/update", form: form, id: id}, h.Update)

	expectStatus(t, rec, err, http.StatusSeeOther)
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/account/" {
		t.Fatalf("expected redirect to /account/, got %q", loc)
	}
	if ck := findCookie(rec, middleware.SessionCookie); ck != nil {
		t.Fatalf("no session cookie expected without a fresh token, got %+v", ck)
	}
	if _, ok := env.revoker.revoked["01JKEEP"]; ok {
		t.Fatalf("the current session must stay valid when no replacement was issued")
	}
}

func TestAccountHandler_Update_OtherAccountForbidden(t *testing.T) {
	env := newTestEnv()

	form := url.Values{
		"account_id":        {"2"},
		"account_firstname": {"Happy"},
		"account_lastname":  {"Employee"},
		"account_email":     {"happy@340.edu"},
	}
	_, err := env.serve(request{method: http.MethodPost, target: "/account/update", form: form, id: clientID}, env.account.Update)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
	if env.checker.calls != 0 || env.accounts.calls != 0 {
		t.Fatalf("nothing may run after a denied authorization")
	}
}

func TestAccountHandler_ChangePassword(t *testing.T) {
	env := newTestEnv()
	var changed domain.PasswordChange
	env.accounts.changeFn = func(_ context.Context, ch domain.PasswordChange) error {
		changed = ch
		return nil
	}

	form := url.Values{"account_id": {"1"}, "account_password": {" N3w!Passw0rdXY "}}
	rec, err := env.serve(request{method: http.MethodPost, target: "/account/change", form: form, id: clientID}, env.account.ChangePassword)

	expectStatus(t, rec, err, http.StatusSeeOther)
	if changed.AccountID != 1 || changed.Password != "N3w!Passw0rdXY" {
		t.Fatalf("unexpected change %+v", changed)
	}
}

func TestAccountHandler_ChangePassword_WeakPassword(t *testing.T) {
	env := newTestEnv()
	env.accounts.getFn = func(_ context.Context, id int64) (*domain.Account, error) {
		return &domain.Account{ID: id, FirstName: "Basic", LastName: "Client", Email: "user@test.com"}, nil
	}

	form := url.Values{"account_id": {"1"}, "account_password": {"password"}}
	rec, err := env.serve(request{method: http.MethodPost, target: "/account/change", form: form, id: clientID}, env.account.ChangePassword)

	expectStatus(t, rec, err, http.StatusBadRequest)
	if env.accounts.calls != 0 {
		t.Fatalf("password must not change")
	}
	if env.renderer.data.Field("account_email") != "user@test.com" {
		t.Fatalf("edit page must be refilled with the profile")
	}
	if _, ok := env.renderer.data.Fields["account_password"]; ok {
		t.Fatalf("password must never be echoed")
	}
}

func TestAccountHandler_Delete_WrongPasswordKeepsAccount(t *testing.T) {
	env := newTestEnv()

	form := url.Values{
		"account_id":        {"1"},
		"account_firstname": {"Basic"},
		"account_lastname":  {"Client"},
		"account_email":     {"user@test.com"},
		"account_password":  {"Other!Passw0rd1"},
	}
	rec, err := env.serve(request{method: http.MethodPost, target: "/account/delete", form: form, id: clientID}, env.account.Delete)

	expectStatus(t, rec, err, http.StatusBadRequest)
	if env.accounts.calls != 0 {
		t.Fatalf("account must not be deleted")
	}
	if !hasFieldError(env.renderer.data.Errors, "account_password") {
		t.Fatalf("expected password mismatch error, got %+v", env.renderer.data.Errors)
	}
}

func TestAccountHandler_Delete_OwnAccountEndsSession(t *testing.T) {
	env := newTestEnv()
	var deleted int64
	env.accounts.deleteFn = func(_ context.Context, id int64) error {
		deleted = id
		return nil
	}
	id := clientID
	id.TokenID = "01JTOKEN"

	form := url.Values{
		"account_id":       {"1"},
		"account_email":    {"user@test.com"},
		"account_password": {strongPassword},
	}
	rec, err := env.serve(request{method: http.MethodPost, target: "/account/delete", form: form, id: id}, env.account.Delete)

	expectStatus(t, rec, err, http.StatusSeeOther)
	if deleted != 1 {
		t.Fatalf("expected account 1 deleted, got %d", deleted)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
	if ck := findCookie(rec, middleware.SessionCookie); ck == nil || ck.MaxAge >= 0 {
		t.Fatalf("expected session cookie cleared, got %+v", ck)
	}
	if _, ok := env.revoker.revoked["01JTOKEN"]; !ok {
		t.Fatalf("expected token to be revoked")
	}
}

func TestAccountHandler_Delete_ByEmployeeEndsOwnerSessions(t *testing.T) {
	env := newTestEnv()
	env.accounts.deleteFn = func(context.Context, int64) error { return nil }
	id := employeeID
	id.TokenID = "01JEMPLOYEE"

	form := url.Values{
		"account_id":       {"1"},
		"account_email":    {"user@test.com"},
		"account_password": {strongPassword},
	}
	rec, err := env.serve(request{method: http.MethodPost, target: "/account/delete", form: form, id: id}, env.account.Delete)

	expectStatus(t, rec, err, http.StatusSeeOther)
	if !env.revoker.accounts[1] {
		t.Fatalf("expected every session of account 1 to be revoked")
	}
	if _, ok := env.revoker.revoked["01JEMPLOYEE"]; ok {
		t.Fatalf("the employee's own session must stay valid")
	}
	if ck := findCookie(rec, middleware.SessionCookie); ck != nil {
		t.Fatalf("the employee's cookie must not be touched, got %+v", ck)
	}
	revoked, _ := env.revoker.IsRevoked(context.Background(), clientID)
	if !revoked {
		t.Fatalf("a live token of the deleted account must be rejected")
	}
}

func TestAccountHandler_Logout(t *testing.T) {
	env := newTestEnv()
	id := clientID
	id.TokenID = "01JLOGOUT"

	rec, err := env.serve(request{method: http.MethodGet, target: "/account/logout", id: id}, env.account.Logout)

	expectStatus(t, rec, err, http.StatusSeeOther)
	if ck := findCookie(rec, middleware.SessionCookie); ck == nil || ck.MaxAge >= 0 {
		t.Fatalf("expected cleared session cookie")
	}
	if _, ok := env.revoker.revoked["01JLOGOUT"]; !ok {
		t.Fatalf("expected token to be revoked")
	}
}

func TestAccountHandler_EditView(t *testing.T) {
	env := newTestEnv()
	env.accounts.getFn = func(_ context.Context, id int64) (*domain.Account, error) {
		return &domain.Account{ID: id, FirstName: "Basic", LastName: "Client", Email: "user@test.com"}, nil
	}

	rec, err := env.serve(request{method: http.MethodGet, target: "/account/edit/1", id: clientID, params: map[string]string{"account_id": "1"}}, env.account.EditView)

	expectStatus(t, rec, err, http.StatusOK)
	if env.renderer.name != view.PageAccountEdit || env.renderer.data.Field("account_id") != "1" {
		t.Fatalf("unexpected render %q %+v", env.renderer.name, env.renderer.data.Fields)
	}
}

func TestAccountHandler_EditView_UnknownAccount(t *testing.T) {
	env := newTestEnv()

	_, err := env.serve(request{method: http.MethodGet, target: "/account/edit/99", id: employeeID, params: map[string]string{"account_id": "99"}}, env.account.EditView)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}
