package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cse-motors/dealership/internal/api/middleware"
	"github.com/cse-motors/dealership/internal/api/pipeline"
	"github.com/cse-motors/dealership/internal/api/validation"
	"github.com/cse-motors/dealership/internal/api/view"
	"github.com/cse-motors/dealership/internal/auth"
	"github.com/cse-motors/dealership/internal/core/domain"
)

var errUnexpected = errors.New("unexpected call")

// --- Renderer ---

type recordingRenderer struct {
	name  string
	data  view.Data
	calls int
}

func (r *recordingRenderer) Render(_ io.Writer, name string, data any, _ echo.Context) error {
	r.calls++
	r.name = name
	r.data, _ = data.(view.Data)
	return nil
}

// --- Services ---

type stubAccountService struct {
	registerFn func(ctx context.Context, reg domain.Registration) (*domain.Account, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.Account, error)
	getFn      func(ctx context.Context, id int64) (*domain.Account, error)
	updateFn   func(ctx context.Context, u domain.ProfileUpdate) (*domain.Account, error)
	changeFn   func(ctx context.Context, ch domain.PasswordChange) error
	deleteFn   func(ctx context.Context, id int64) error
	calls      int
}

func (s *stubAccountService) Register(ctx context.Context, reg domain.Registration) (*domain.Account, error) {
	s.calls++
	if s.registerFn == nil {
		return nil, errUnexpected
	}
	return s.registerFn(ctx, reg)
}

func (s *stubAccountService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	s.calls++
	if s.loginFn == nil {
		return "", nil, errUnexpected
	}
	return s.loginFn(ctx, email, password)
}

func (s *stubAccountService) Get(ctx context.Context, id int64) (*domain.Account, error) {
	if s.getFn == nil {
		return nil, domain.ErrAccountNotFound
	}
	return s.getFn(ctx, id)
}

func (s *stubAccountService) UpdateProfile(ctx context.Context, u domain.ProfileUpdate) (*domain.Account, error) {
	s.calls++
	if s.updateFn == nil {
		return nil, errUnexpected
	}
	return s.updateFn(ctx, u)
}

func (s *stubAccountService) ChangePassword(ctx context.Context, ch domain.PasswordChange) error {
	s.calls++
	if s.changeFn == nil {
		return errUnexpected
	}
	return s.changeFn(ctx, ch)
}

func (s *stubAccountService) Delete(ctx context.Context, id int64) error {
	s.calls++
	if s.deleteFn == nil {
		return errUnexpected
	}
	return s.deleteFn(ctx, id)
}

type stubInventoryService struct {
	classes []domain.Classification
	items   map[int64]domain.InventoryItem
	added   []domain.VehicleSpec
	writes  int
	failAdd error
}

func newStubInventory() *stubInventoryService {
	return &stubInventoryService{
		classes: []domain.Classification{{ID: 1, Name: "Custom"}, {ID: 2, Name: "SUV"}, {ID: 3, Name: "Truck"}},
		items: map[int64]domain.InventoryItem{
			7: {ID: 7, ClassificationID: 2, ClassificationName: "SUV", Make: "Jeep", Model: "Wrangler", Year: 2019, Price: 2899900, Miles: 41205, Color: "Yellow"},
		},
	}
}

func (s *stubInventoryService) Classifications(context.Context) ([]domain.Classification, error) {
	return s.classes, nil
}

func (s *stubInventoryService) Classification(_ context.Context, id int64) (*domain.Classification, error) {
	for _, c := range s.classes {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubInventoryService) AddClassification(_ context.Context, name string) (*domain.Classification, error) {
	s.writes++
	c := domain.Classification{ID: int64(len(s.classes) + 1), Name: name}
	s.classes = append(s.classes, c)
	return &c, nil
}

func (s *stubInventoryService) ItemsByClassification(ctx context.Context, id int64) ([]domain.InventoryItem, error) {
	if _, err := s.Classification(ctx, id); err != nil {
		return nil, err
	}
	out := []domain.InventoryItem{}
	for _, it := range s.items {
		if it.ClassificationID == id {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *stubInventoryService) Item(_ context.Context, id int64) (*domain.InventoryItem, error) {
	it, ok := s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &it, nil
}

func (s *stubInventoryService) AddItem(_ context.Context, spec domain.VehicleSpec) (*domain.InventoryItem, error) {
	s.writes++
	if s.failAdd != nil {
		return nil, s.failAdd
	}
	s.added = append(s.added, spec)
	it := spec.Item(int64(100 + len(s.added)))
	return &it, nil
}

func (s *stubInventoryService) UpdateItem(_ context.Context, id int64, spec domain.VehicleSpec) (*domain.InventoryItem, error) {
	s.writes++
	if _, ok := s.items[id]; !ok {
		return nil, domain.ErrNotFound
	}
	it := spec.Item(id)
	s.items[id] = it
	return &it, nil
}

func (s *stubInventoryService) DeleteItem(_ context.Context, id int64) error {
	s.writes++
	if _, ok := s.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// --- Consistency checks ---

type stubChecker struct {
	// accounts maps email to account id; passwords maps email to password.
	accounts  map[string]int64
	passwords map[string]string
	inventory *stubInventoryService
	calls     int
}

func (s *stubChecker) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.EmailExistsForOther(ctx, email, 0)
}

func (s *stubChecker) EmailExistsForOther(_ context.Context, email string, exceptID int64) (bool, error) {
	s.calls++
	id, ok := s.accounts[email]
	return ok && id != exceptID, nil
}

func (s *stubChecker) ClassificationExists(_ context.Context, name string) (bool, error) {
	s.calls++
	for _, c := range s.inventory.classes {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubChecker) ClassificationKnown(ctx context.Context, id int64) (bool, error) {
	s.calls++
	_, err := s.inventory.Classification(ctx, id)
	return err == nil, nil
}

func (s *stubChecker) PasswordMatches(_ context.Context, email string, accountID int64, password string) (bool, error) {
	s.calls++
	id, ok := s.accounts[email]
	return ok && id == accountID && s.passwords[email] == password, nil
}

// --- Environment ---

const strongPassword = "Str0ng!Passw0rd"

type testEnv struct {
	e         *echo.Echo
	renderer  *recordingRenderer
	accounts  *stubAccountService
	inventory *stubInventoryService
	checker   *stubChecker
	tokens    *auth.TokenManager
	revoker   *stubRevoker
	runner    *pipeline.Runner
	pages     *Pages
	account   *AccountHandler
	inv       *InventoryHandler
}

type stubRevoker struct {
	revoked  map[string]time.Time
	accounts map[int64]bool
}

func (r *stubRevoker) Revoke(_ context.Context, id string, until time.Time) error {
	r.revoked[id] = until
	return nil
}

func (r *stubRevoker) RevokeAccount(_ context.Context, accountID int64) error {
	r.accounts[accountID] = true
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, id domain.Identity) (bool, error) {
	_, ok := r.revoked[id.TokenID]
	return ok || r.accounts[id.AccountID], nil
}

func newTestEnv() *testEnv {
	e := echo.New()
	rr := &recordingRenderer{}
	e.Renderer = rr

	inventory := newStubInventory()
	checker := &stubChecker{
		accounts:  map[string]int64{"user@test.com": 1},
		passwords: map[string]string{"user@test.com": strongPassword},
		inventory: inventory,
	}
	accounts := &stubAccountService{}
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	revoker := &stubRevoker{revoked: map[string]time.Time{}, accounts: map[int64]bool{}}

	pages := NewPages(inventory, zerolog.Nop())
	runner := pipeline.NewRunner(validation.New(checker), pages.Nav,
		middleware.CookieOptions{MaxAge: tokens.CookieMaxAge()}, zerolog.Nop())

	return &testEnv{
		e:         e,
		renderer:  rr,
		accounts:  accounts,
		inventory: inventory,
		checker:   checker,
		tokens:    tokens,
		revoker:   revoker,
		runner:    runner,
		pages:     pages,
		account:   NewAccountHandler(accounts, tokens, revoker, runner, pages, zerolog.Nop()),
		inv:       NewInventoryHandler(inventory, runner, pages),
	}
}

type request struct {
	method string
	target string
	form   url.Values
	id     domain.Identity
	params map[string]string
}

func (env *testEnv) serve(r request, h echo.HandlerFunc) (*httptest.ResponseRecorder, error) {
	var body io.Reader
	if r.form != nil {
		body = strings.NewReader(r.form.Encode())
	}
	req := httptest.NewRequest(r.method, r.target, body)
	if r.form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	if len(r.params) > 0 {
		names := make([]string, 0, len(r.params))
		values := make([]string, 0, len(r.params))
		for name, value := range r.params {
			names = append(names, name)
			values = append(values, value)
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	middleware.SetIdentity(c, r.id)
	return rec, h(c)
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, err error, want int) {
	t.Helper()
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != want {
		t.Fatalf("expected %d, got %d", want, rec.Code)
	}
}

func hasFieldError(errs []domain.FieldError, field string) bool {
	for _, fe := range errs {
		if fe.Field == field {
			return true
		}
	}
	return false
}

var (
	clientID   = domain.Identity{AccountID: 1, FirstName: "Basic", Email: "user@test.com", Role: domain.RoleClient}
	employeeID = domain.Identity{AccountID: 2, FirstName: "Happy", Email: "happy@340.edu", Role: domain.RoleEmployee}
)
