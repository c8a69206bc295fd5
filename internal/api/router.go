package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/cse-motors/dealership/internal/api/docs"
	"github.com/cse-motors/dealership/internal/api/handler"
	"github.com/cse-motors/dealership/internal/api/middleware"
	"github.com/cse-motors/dealership/internal/api/validation"
	"github.com/cse-motors/dealership/internal/api/view"
	"github.com/cse-motors/dealership/internal/core/ports"
	"github.com/cse-motors/dealership/pkg/logger"
)

// Registry is where the HTTP metrics are registered and gathered from.
type Registry interface {
	prometheus.Registerer
	prometheus.Gatherer
}

// Deps are the collaborators of the router, built by the serve command.
type Deps struct {
	Log       zerolog.Logger
	Renderer  echo.Renderer
	Validator *validation.Validator
	Tokens    ports.TokenVerifier
	// Revoker may be nil when no revocation store is configured.
	Revoker ports.SessionRevoker
	// Metrics defaults to the global Prometheus registry.
	Metrics Registry

	Pages     *handler.Pages
	Accounts  *handler.AccountHandler
	Inventory *handler.InventoryHandler
	Health    *handler.HealthHandler
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = d.Renderer
	e.Validator = d.Validator
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log, d.Pages.Nav)

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if d.Metrics != nil {
		registerer, gatherer = d.Metrics, d.Metrics
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(logger.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "dealership",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(view.Flash())
	e.Use(middleware.Session(d.Tokens, d.Revoker, d.Log))

	// --- Probes, metrics and docs (no session needed) ---
	e.GET("/health", d.Health.Liveness)
	e.GET("/health/ready", d.Health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Public pages ---
	e.GET("/", d.Inventory.Home)

	// --- Account routes ---
	acct := e.Group("/account")
	authenticated := middleware.RequireAuthenticated()
	owner := middleware.RequireAccountOwner("account_id")

	acct.GET("/login", d.Accounts.LoginView)
	acct.GET("/register", d.Accounts.RegisterView)
	acct.POST("/login", d.Accounts.Login)
	acct.POST("/register", d.Accounts.Register)

	acct.GET("/", d.Accounts.ManagementView, authenticated)
	acct.GET("/logout", d.Accounts.Logout, authenticated)
	acct.GET("/edit/:account_id", d.Accounts.EditView, owner)
	acct.GET("/delete/:account_id", d.Accounts.DeleteView, owner)
	acct.POST("/update", d.Accounts.Update, authenticated)
	acct.POST("/change", d.Accounts.ChangePassword, authenticated)
	acct.POST("/delete", d.Accounts.Delete, authenticated)

	// --- Inventory routes ---
	inv := e.Group("/inv")
	elevated := middleware.RequireElevated()

	inv.GET("/type/:classification_id", d.Inventory.ClassificationView)
	inv.GET("/detail/:inv_id", d.Inventory.DetailView)
	inv.GET("/getInventory/:classification_id", d.Inventory.GetInventoryJSON)

	inv.GET("/", d.Inventory.ManagementView, elevated)
	inv.GET("/add-classification", d.Inventory.AddClassificationView, elevated)
	inv.GET("/add-inventory", d.Inventory.AddInventoryView, elevated)
	inv.GET("/edit/:inv_id", d.Inventory.EditView, elevated)
	inv.GET("/delete/:inv_id", d.Inventory.DeleteView, elevated)
	inv.POST("/add-classification", d.Inventory.AddClassification, elevated)
	inv.POST("/add-inventory", d.Inventory.AddInventory, elevated)
	inv.POST("/update", d.Inventory.UpdateInventory, elevated)
	inv.POST("/delete", d.Inventory.DeleteInventory, elevated)

	return e
}
