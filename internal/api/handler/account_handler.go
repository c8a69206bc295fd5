package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cse-motors/dealership/internal/api/metrics"
	"github.com/cse-motors/dealership/internal/api/middleware"
	"github.com/cse-motors/dealership/internal/api/pipeline"
	"github.com/cse-motors/dealership/internal/api/view"
	"github.com/cse-motors/dealership/internal/core/domain"
	"github.com/cse-motors/dealership/internal/core/ports"
)

// AccountHandler serves the account pages and their form submissions.
type AccountHandler struct {
	accounts ports.AccountService
	tokens   ports.TokenIssuer
	revoker  ports.SessionRevoker
	runner   *pipeline.Runner
	pages    *Pages
	log      zerolog.Logger
}

// NewAccountHandler wires the handler. revoker may be nil, in which case
// logout only clears the cookie.
func NewAccountHandler(
	accounts ports.AccountService,
	tokens ports.TokenIssuer,
	revoker ports.SessionRevoker,
	runner *pipeline.Runner,
	pages *Pages,
	log zerolog.Logger,
) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		tokens:   tokens,
		revoker:  revoker,
		runner:   runner,
		pages:    pages,
		log:      log,
	}
}

// --- Views ---

func (h *AccountHandler) LoginView(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageLogin, h.pages.Data(c, "Login"))
}

func (h *AccountHandler) RegisterView(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageRegister, h.pages.Data(c, "Register"))
}

// ManagementView is the landing page after login.
func (h *AccountHandler) ManagementView(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageAccount, h.pages.Data(c, "Account Management"))
}

func (h *AccountHandler) EditView(c echo.Context) error {
	return h.accountPage(c, view.PageAccountEdit, "Edit Account")
}

func (h *AccountHandler) DeleteView(c echo.Context) error {
	return h.accountPage(c, view.PageAccountDelete, "Delete Account")
}

func (h *AccountHandler) accountPage(c echo.Context, page, title string) error {
	id, err := pathID(c, "account_id")
	if err != nil {
		return err
	}
	account, err := h.accounts.Get(c.Request().Context(), id)
	if err != nil {
		return lookupError(err)
	}
	data := h.pages.Data(c, title)
	data.Account = account
	data.Fields = accountFields(account)
	return c.Render(http.StatusOK, page, data)
}

// Logout ends the session: the token is revoked and the cookie cleared.
func (h *AccountHandler) Logout(c echo.Context) error {
	id := middleware.IdentityFrom(c)
	h.revoke(c.Request().Context(), id, "logout")
	middleware.ClearSessionCookie(c)
	middleware.SetIdentity(c, domain.Anonymous)
	view.SetFlash(c, "You have been logged out.")
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *AccountHandler) revoke(ctx context.Context, id domain.Identity, reason string) {
	if h.revoker == nil || id.TokenID == "" {
		return
	}
	if err := h.revoker.Revoke(ctx, id.TokenID, id.ExpiresAt); err != nil {
		h.log.Warn().Err(err).Int64("account_id", id.AccountID).Msg("session revocation failed")
		return
	}
	metrics.SessionsRevokedTotal.WithLabelValues(reason).Inc()
}

// revokeAccount ends the sessions a deleted account may still hold in
// other browsers.
func (h *AccountHandler) revokeAccount(ctx context.Context, accountID int64) {
	if h.revoker == nil {
		return
	}
	if err := h.revoker.RevokeAccount(ctx, accountID); err != nil {
		h.log.Warn().Err(err).Int64("account_id", accountID).Msg("account session revocation failed")
		return
	}
	metrics.SessionsRevokedTotal.WithLabelValues("account_deleted").Inc()
}

// --- Submissions ---

// Register creates a Client account and sends the visitor to the login page.
func (h *AccountHandler) Register(c echo.Context) error {
	return pipeline.Run(h.runner, c, pipeline.Op[registerForm]{
		Name: "register",
		Form: func(*registerForm) pipeline.Form { return pipeline.Form{View: view.PageRegister, Title: "Register"} },
		Echo: func(f *registerForm) map[string]string {
			return map[string]string{
				"account_firstname": f.FirstName,
				"account_lastname":  f.LastName,
				"account_email":     f.Email,
			}
		},
		Apply: func(ctx context.Context, v pipeline.Valid[registerForm]) (pipeline.Success, error) {
			account, err := h.accounts.Register(ctx, toRegistration(v.Form()))
			if err != nil {
				return pipeline.Success{}, err
			}
			return pipeline.Success{
				Notice:   fmt.Sprintf("Congratulations, you're registered %s. Please log in.", account.FirstName),
				Redirect: "/account/login",
			}, nil
		},
		FailureNotice: func(*registerForm) string { return "Sorry, the registration failed." },
	})
}

// Login verifies the credentials and hands out the session cookie.
func (h *AccountHandler) Login(c echo.Context) error {
	return pipeline.Run(h.runner, c, pipeline.Op[loginForm]{
		Name: "login",
		Form: func(*loginForm) pipeline.Form { return pipeline.Form{View: view.PageLogin, Title: "Login"} },
		Echo: func(f *loginForm) map[string]string {
			return map[string]string{"account_email": f.Email}
		},
		Apply: func(ctx context.Context, v pipeline.Valid[loginForm]) (pipeline.Success, error) {
			token, _, err := h.accounts.Login(ctx, v.Form().Email, v.Form().Password)
			if err != nil {
				return pipeline.Success{}, err
			}
			return pipeline.Success{Redirect: "/account/", Session: token}, nil
		},
		FailureNotice: func(*loginForm) string { return "Sorry, the login failed." },
	})
}

// Update replaces name and email. Updating one's own account re-issues the
// session so the header shows the new name.
func (h *AccountHandler) Update(c echo.Context) error {
	return pipeline.Run(h.runner, c, pipeline.Op[updateAccountForm]{
		Name: "update_account",
		Form: func(*updateAccountForm) pipeline.Form {
			return pipeline.Form{View: view.PageAccountEdit, Title: "Edit Account"}
		},
		Authorize: func(id domain.Identity, f *updateAccountForm) error {
			return authorizeAccount(id, f.AccountID)
		},
		Echo: func(f *updateAccountForm) map[string]string {
			return map[string]string{
				"account_id":        f.AccountID,
				"account_firstname": f.FirstName,
				"account_lastname":  f.LastName,
				"account_email":     f.Email,
			}
		},
		Apply: func(ctx context.Context, v pipeline.Valid[updateAccountForm]) (pipeline.Success, error) {
			update, err := toProfileUpdate(v.Form())
			if err != nil {
				return pipeline.Success{}, err
			}
			account, err := h.accounts.UpdateProfile(ctx, update)
			if err != nil {
				return pipeline.Success{}, err
			}

			res := pipeline.Success{
				Notice:   fmt.Sprintf("%s, your account details were successfully updated.", account.FirstName),
				Redirect: "/account/",
			}
			if v.Identity().AccountID != account.ID {
				return res, nil
			}
			// The update is stored either way; without a fresh token the old
			// session keeps the previous name until it expires.
			token, _, err := h.tokens.Issue(account)
			if err != nil {
				h.log.Error().Err(err).Int64("account_id", account.ID).Msg("session reissue failed")
				return res, nil
			}
			h.revoke(ctx, v.Identity(), "reissued")
			res.Session = token
			return res, nil
		},
		FailureNotice: func(*updateAccountForm) string {
			return "Sorry, your account information could not be updated."
		},
	})
}

// ChangePassword replaces only the password hash of the account.
func (h *AccountHandler) ChangePassword(c echo.Context) error {
	return pipeline.Run(h.runner, c, pipeline.Op[changePasswordForm]{
		Name: "change_password",
		Form: func(*changePasswordForm) pipeline.Form {
			return pipeline.Form{View: view.PageAccountEdit, Title: "Edit Account"}
		},
		Authorize: func(id domain.Identity, f *changePasswordForm) error {
			return authorizeAccount(id, f.AccountID)
		},
		Echo: func(f *changePasswordForm) map[string]string {
			return map[string]string{"account_id": f.AccountID}
		},
		// The edit page also carries the profile form.
		Decorate: func(ctx context.Context, f *changePasswordForm, data *view.Data) error {
			id, err := parseID(f.AccountID)
			if err != nil {
				return err
			}
			account, err := h.accounts.Get(ctx, id)
			if err != nil {
				return err
			}
			data.Account = account
			data.Fields = accountFields(account)
			return nil
		},
		Apply: func(ctx context.Context, v pipeline.Valid[changePasswordForm]) (pipeline.Success, error) {
			change, err := toPasswordChange(v.Form())
			if err != nil {
				return pipeline.Success{}, err
			}
			if err := h.accounts.ChangePassword(ctx, change); err != nil {
				return pipeline.Success{}, err
			}
			return pipeline.Success{Notice: "Your password has been updated.", Redirect: "/account/"}, nil
		},
		FailureNotice: func(*changePasswordForm) string { return "Sorry, the password update failed." },
	})
}

// Delete removes the account after the password was verified again.
// Deleting one's own account also ends the session.
func (h *AccountHandler) Delete(c echo.Context) error {
	return pipeline.Run(h.runner, c, pipeline.Op[deleteAccountForm]{
		Name: "delete_account",
		Form: func(*deleteAccountForm) pipeline.Form {
			return pipeline.Form{View: view.PageAccountDelete, Title: "Delete Account"}
		},
		Authorize: func(id domain.Identity, f *deleteAccountForm) error {
			return authorizeAccount(id, f.AccountID)
		},
		Echo: func(f *deleteAccountForm) map[string]string {
			return map[string]string{
				"account_id":        f.AccountID,
				"account_firstname": f.FirstName,
				"account_lastname":  f.LastName,
				"account_email":     f.Email,
			}
		},
		Apply: func(ctx context.Context, v pipeline.Valid[deleteAccountForm]) (pipeline.Success, error) {
			id, err := parseID(v.Form().AccountID)
			if err != nil {
				return pipeline.Success{}, err
			}
			if err := h.accounts.Delete(ctx, id); err != nil {
				return pipeline.Success{}, err
			}

			res := pipeline.Success{Notice: "Your account has been deleted!", Redirect: "/"}
			h.revokeAccount(ctx, id)
			if v.Identity().AccountID == id {
				h.revoke(ctx, v.Identity(), "account_deleted")
				res.ClearSession = true
			}
			return res, nil
		},
		FailureNotice: func(*deleteAccountForm) string {
			return "Problem encountered while trying to delete account."
		},
	})
}
